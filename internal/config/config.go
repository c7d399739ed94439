// Package config 提供 codemetrics 的配置加载与校验。
// 配置来源优先级：命令行参数 > 环境变量（CODEMETRICS_ 前缀）> 配置文件 > 默认值。
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// 校验失败时返回的哨兵错误。
var (
	ErrInvalidWorkers     = errors.New("workers must not be negative")
	ErrInvalidFormat      = errors.New("unsupported report format, allowed values: table, json, yaml")
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrNoExtensions       = errors.New("at least one scan extension is required")
	ErrInvalidCloneDepth  = errors.New("clone depth must not be negative")
)

// envPrefix 是环境变量前缀，例如 CODEMETRICS_SCAN_WORKERS。
const envPrefix = "CODEMETRICS"

// Config 汇总全部配置。
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AnalysisConfig 控制单文件分析行为。
type AnalysisConfig struct {
	StrictCodeLines bool   `mapstructure:"strict_code_lines"`
	MaxFileSize     string `mapstructure:"max_file_size"`
}

// ScanConfig 控制目录遍历与并发。
type ScanConfig struct {
	Extensions  []string `mapstructure:"extensions"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	Workers     int      `mapstructure:"workers"`
	CloneDepth  int      `mapstructure:"clone_depth"`
}

// ReportConfig 控制输出格式。
type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig 控制日志级别与格式。
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig 控制 Prometheus 指标导出。
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// MaxFileSizeBytes 返回解析后的单文件大小上限，0 表示不限制。
func (c AnalysisConfig) MaxFileSizeBytes() (uint64, error) {
	if strings.TrimSpace(c.MaxFileSize) == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxFileSize, c.MaxFileSize, err)
	}
	return size, nil
}

// Load 读取配置。path 为空时在当前目录与 ./config 下查找 codemetrics.yaml，
// 找不到配置文件不算错误。
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith 使用调用方提供的 viper 实例加载配置，便于命令层绑定 flag。
func LoadWith(viperCfg *viper.Viper, path string) (*Config, error) {
	setDefaults(viperCfg)

	if path != "" {
		viperCfg.SetConfigFile(path)
	} else {
		viperCfg.SetConfigName("codemetrics")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if readErr := viperCfg.ReadInConfig(); readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config file: %w", readErr)
		}
	}

	var config Config
	if err := viperCfg.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	normalize(&config)
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值。
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.strict_code_lines", false)
	viperCfg.SetDefault("analysis.max_file_size", "1MB")

	viperCfg.SetDefault("scan.workers", 0)
	viperCfg.SetDefault("scan.extensions", []string{".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".cpp", ".c", ".cs"})
	viperCfg.SetDefault("scan.exclude_dirs", []string{"node_modules", "vendor", "dist", "build", "__pycache__"})
	viperCfg.SetDefault("scan.clone_depth", 1)

	viperCfg.SetDefault("report.format", "table")
	viperCfg.SetDefault("report.output", "")
	viperCfg.SetDefault("report.no_color", false)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	viperCfg.SetDefault("metrics.textfile", "")
}

// normalize 统一大小写并为后缀补齐点号。
func normalize(config *Config) {
	config.Report.Format = strings.ToLower(strings.TrimSpace(config.Report.Format))
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	extensions := make([]string, 0, len(config.Scan.Extensions))
	for _, ext := range config.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}
	config.Scan.Extensions = extensions
}

// Validate 校验配置取值。
func Validate(config *Config) error {
	if config.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Scan.Workers)
	}
	if config.Scan.CloneDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCloneDepth, config.Scan.CloneDepth)
	}
	if len(config.Scan.Extensions) == 0 {
		return ErrNoExtensions
	}

	switch config.Report.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Report.Format)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if _, err := config.Analysis.MaxFileSizeBytes(); err != nil {
		return err
	}

	return nil
}
