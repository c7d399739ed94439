// Package logging 根据配置构建 slog 日志器。
// 分析核心是纯函数不写日志，日志只出现在扫描与命令层。
package logging

import (
	"io"
	"log/slog"

	"codemetrics/internal/config"
)

// attrService 标识日志来源，便于与其他工具的日志混合检索。
const (
	attrService = "service"
	serviceName = "codemetrics"
)

// New 按配置创建日志器，输出到 writer（命令层传入 stderr）。
func New(cfg config.LoggingConfig, writer io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return slog.New(handler).With(slog.String(attrService, serviceName))
}

// Discard 返回丢弃全部输出的日志器，用于测试与未注入日志器的场景。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel 把配置中的级别字符串转为 slog.Level，未知值按 info 处理。
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
