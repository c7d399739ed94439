// Package report 提供 codemetrics 的输出能力。
// 支持 table 控制台格式、JSON 与 YAML，三种格式都可以导出到文件。
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codemetrics/internal/model"
)

// Format 表示输出格式。
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// 输出失败时返回的哨兵错误。
var (
	ErrUnsupportedFormat = errors.New("unsupported format, allowed values: table, json, yaml")
	ErrUnsupportedValue  = errors.New("unsupported report value")
)

// Options 控制表格渲染。
type Options struct {
	NoColor bool
}

// ParseFormat 解析格式名，大小写不敏感。
func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// FormatForPath 根据导出文件后缀推断格式，无法推断时返回 fallback。
func FormatForPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt":
		return FormatTable
	default:
		return fallback
	}
}

// Render 按格式把单文件结果或扫描结果写到 writer。
func Render(writer io.Writer, value any, format Format, options Options) error {
	switch format {
	case FormatTable:
		switch typed := value.(type) {
		case model.ScanResult:
			return PrintTable(writer, typed, options)
		case model.FileAnalysisResult:
			return PrintFileTable(writer, typed, options)
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
		}
	case FormatJSON:
		return PrintJSON(writer, value)
	case FormatYAML:
		return PrintYAML(writer, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// PrintJSON 把结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	content = append(content, '\n')
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, value any) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

// WriteFile 将结果导出到指定路径，表格格式导出时不带颜色。
// 如果目录不存在会自动创建。
func WriteFile(path string, value any, format Format) error {
	var buffer bytes.Buffer
	if err := Render(&buffer, value, format, Options{NoColor: true}); err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, buffer.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
