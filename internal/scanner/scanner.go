// Package scanner 提供目录遍历与并发分析调度能力。
// 该层负责文件发现、过滤、读取、并发执行和结果聚合，不负责度量细节；
// 单文件失败只记录为 ScanError，不会中断整批扫描。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/src-d/enry/v2"
	"golang.org/x/sync/errgroup"

	"codemetrics/internal/analysis"
	"codemetrics/internal/logging"
	"codemetrics/internal/model"
)

// 扫描失败时返回或记录的哨兵错误。
var (
	ErrEmptyPath       = errors.New("scan path is empty")
	ErrUnsupportedFile = errors.New("unsupported file extension")
	ErrFileTooLarge    = errors.New("file exceeds max file size")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// DefaultExtensions 是默认允许扫描的后缀。
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".cpp", ".c", ".cs"}

// DefaultExcludeDirs 是默认跳过的依赖目录。
var DefaultExcludeDirs = []string{"node_modules", "vendor", "dist", "build", "__pycache__"}

// Options 是扫描服务的可配置参数。
type Options struct {
	// Workers 为并发分析的文件数上限，<= 0 时使用 runtime.NumCPU()。
	Workers int
	// Extensions 为允许扫描的后缀（含点号），为空时使用 DefaultExtensions。
	Extensions []string
	// ExcludeDirs 为需要整体跳过的目录名，为 nil 时使用 DefaultExcludeDirs。
	ExcludeDirs []string
	// MaxFileSize 为单文件字节数上限，0 表示不限制。
	MaxFileSize uint64
	// CloneDepth 为克隆仓库时的 --depth，0 表示完整克隆。
	CloneDepth int
	// TempRoot 为克隆仓库使用的临时目录父目录，为空时使用系统默认。
	TempRoot string
	// GitBinary 为 git 可执行文件，为空时使用 PATH 中的 git。
	GitBinary string
	Logger    *slog.Logger
	Metrics   *Metrics
}

// Service 是扫描服务对象，构建后可以并发调用。
type Service struct {
	analyzer *analysis.Analyzer
	options  Options
	allowed  map[string]struct{}
	excluded map[string]struct{}
	logger   *slog.Logger
	metrics  *Metrics
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// NewService 创建扫描服务。
func NewService(analyzer *analysis.Analyzer, options Options) *Service {
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer()
	}
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if len(options.Extensions) == 0 {
		options.Extensions = DefaultExtensions
	}
	if options.ExcludeDirs == nil {
		options.ExcludeDirs = DefaultExcludeDirs
	}
	if options.GitBinary == "" {
		options.GitBinary = "git"
	}

	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	service := &Service{
		analyzer: analyzer,
		options:  options,
		allowed:  make(map[string]struct{}, len(options.Extensions)),
		excluded: make(map[string]struct{}, len(options.ExcludeDirs)),
		logger:   logger,
		metrics:  options.Metrics,
	}
	for _, ext := range options.Extensions {
		service.allowed[strings.ToLower(ext)] = struct{}{}
	}
	for _, dir := range options.ExcludeDirs {
		service.excluded[dir] = struct{}{}
	}
	return service
}

// ScanPath 扫描目录或单文件，结果按路径排序。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, ErrEmptyPath
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget
	result.Files = make([]model.FileAnalysisResult, 0)
	result.Errors = make([]model.ScanError, 0)

	started := time.Now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.options.Workers)

	var mu sync.Mutex
	var acc model.Accumulator
	enqueue := func(task scanTask) error {
		if ctxErr := groupCtx.Err(); ctxErr != nil {
			return ctxErr
		}
		group.Go(func() error {
			fileResult, scanErr := s.analyzeTask(groupCtx, task)
			if errors.Is(scanErr, context.Canceled) || errors.Is(scanErr, context.DeadlineExceeded) {
				return scanErr
			}

			mu.Lock()
			defer mu.Unlock()
			if scanErr != nil {
				result.Errors = append(result.Errors, model.ScanError{Path: task.displayPath, Error: scanErr.Error()})
				return nil
			}
			result.Files = append(result.Files, fileResult)
			acc.Add(fileResult)
			return nil
		})
		return nil
	}

	var walkErr error
	if info.IsDir() {
		walkErr = s.walkDirectory(absoluteTarget, enqueue, &mu, &result)
	} else {
		walkErr = s.enqueueSingleFile(absoluteTarget, enqueue)
	}

	waitErr := group.Wait()
	if walkErr != nil {
		return result, walkErr
	}
	if waitErr != nil {
		return result, waitErr
	}

	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].FileName < result.Files[j].FileName
	})
	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	result.Summary = acc.Summary()

	s.metrics.observeScan(time.Since(started))
	s.logger.Info("scan completed",
		"path", absoluteTarget,
		"files", len(result.Files),
		"errors", len(result.Errors),
		"duration", time.Since(started).String())

	return result, nil
}

// walkDirectory 遍历目录，跳过隐藏项、依赖目录与 vendor 文件，把允许的文件交给 enqueue。
// 无法访问的子项记录为 ScanError 后继续遍历。
func (s *Service) walkDirectory(
	root string,
	enqueue func(scanTask) error,
	mu *sync.Mutex,
	result *model.ScanResult,
) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}
		displayPath := filepath.ToSlash(relativePath)

		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.logger.Warn("walk entry failed", "path", displayPath, "error", walkErr)
			s.metrics.observeError()
			mu.Lock()
			result.Errors = append(result.Errors, model.ScanError{Path: displayPath, Error: walkErr.Error()})
			mu.Unlock()
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		if entry.IsDir() {
			if reason := s.skipDirectoryReason(entry.Name(), displayPath); reason != "" {
				s.logger.Debug("directory skipped", "path", displayPath, "reason", reason)
				s.metrics.observeSkip(reason)
				return filepath.SkipDir
			}
			return nil
		}

		if reason := s.skipFileReason(entry, displayPath); reason != "" {
			s.logger.Debug("file skipped", "path", displayPath, "reason", reason)
			s.metrics.observeSkip(reason)
			return nil
		}

		return enqueue(scanTask{absolutePath: path, displayPath: displayPath})
	})
}

// skipDirectoryReason 返回目录被跳过的原因，空字符串表示不跳过。
func (s *Service) skipDirectoryReason(name string, displayPath string) string {
	switch {
	case strings.HasPrefix(name, "."):
		return "hidden"
	case s.isExcludedDir(name):
		return "excluded"
	case enry.IsVendor(displayPath + "/"):
		return "vendor"
	default:
		return ""
	}
}

// skipFileReason 返回文件被跳过的原因，空字符串表示不跳过。
func (s *Service) skipFileReason(entry fs.DirEntry, displayPath string) string {
	switch {
	case strings.HasPrefix(entry.Name(), "."):
		return "hidden"
	case !entry.Type().IsRegular():
		return "irregular"
	case !s.isAllowed(entry.Name()):
		return "extension"
	case enry.IsVendor(displayPath):
		return "vendor"
	default:
		return ""
	}
}

func (s *Service) isExcludedDir(name string) bool {
	_, ok := s.excluded[name]
	return ok
}

func (s *Service) isAllowed(name string) bool {
	_, ok := s.allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// enqueueSingleFile 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFile(filePath string, enqueue func(scanTask) error) error {
	if !s.isAllowed(filePath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filePath))
	}

	return enqueue(scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
	})
}

// analyzeTask 读取文件并执行分析。
func (s *Service) analyzeTask(ctx context.Context, task scanTask) (model.FileAnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return model.FileAnalysisResult{}, err
	}

	content, err := s.ReadSource(task.absolutePath)
	if err != nil {
		s.logger.Warn("file analysis failed", "path", task.displayPath, "error", err)
		s.metrics.observeError()
		return model.FileAnalysisResult{}, err
	}

	started := time.Now()
	fileResult := s.analyzer.Analyze(task.displayPath, content)
	s.metrics.observeFile(fileResult, len(content), time.Since(started))

	s.logger.Debug("file analyzed",
		"path", task.displayPath,
		"language", fileResult.Language,
		"size", humanize.Bytes(uint64(len(content))),
		"score", fileResult.CodeQuality.Score)

	return fileResult, nil
}

// ReadSource 读取单个源码文件，超过大小上限或不是合法 UTF-8 时返回错误。
func (s *Service) ReadSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat file: %w", err)
	}

	if limit := s.options.MaxFileSize; limit > 0 && uint64(info.Size()) > limit {
		return "", fmt.Errorf("%w: %s > %s",
			ErrFileTooLarge, humanize.Bytes(uint64(info.Size())), humanize.Bytes(limit))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
