package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemetrics/internal/analysis"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.js")

	writeFixtureFile(t, filePath, strings.Join([]string{
		"// top comment",
		"function main() {",
		"  return 1;",
		"}",
	}, "\n"))

	service := NewService(nil, Options{Workers: 2})
	result, err := service.ScanPath(context.Background(), filePath)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, result.Summary.TotalFiles)
	assert.Equal(t, 4, result.Summary.TotalLines)

	fileResult := result.Files[0]
	assert.Equal(t, "single.js", fileResult.FileName)
	assert.Equal(t, "javascript", fileResult.Language)
	assert.Equal(t, []string{"main"}, fileResult.Functions.Names)
}

// TestScanDirectory 验证目录扫描的过滤规则与汇总。
func TestScanDirectory(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.py"), "def main():\n    return 1\n")
	writeFixtureFile(t, filepath.Join(tempDir, "web", "app.js"), "const x = 1; // js comment")
	writeFixtureFile(t, filepath.Join(tempDir, "README.txt"), "not a source file")
	writeFixtureFile(t, filepath.Join(tempDir, "node_modules", "lib", "index.js"), "module.exports = 1;")
	writeFixtureFile(t, filepath.Join(tempDir, ".cache", "gen.js"), "var hidden = 1;")
	writeFixtureFile(t, filepath.Join(tempDir, ".eslintrc.js"), "module.exports = {};")

	service := NewService(analysis.NewAnalyzer(), Options{Workers: 4})
	result, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "main.py", result.Files[0].FileName)
	assert.Equal(t, "web/app.js", result.Files[1].FileName)
	assert.Empty(t, result.Errors)

	assert.Equal(t, 2, result.Summary.TotalFiles)
	assert.Equal(t, map[string]int{"python": 1, "javascript": 1}, result.Summary.LanguageDistribution)
}

// TestScanCustomExtensions 验证可以放开默认后缀列表。
func TestScanCustomExtensions(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n\nfunc main() {}\n")
	writeFixtureFile(t, filepath.Join(tempDir, "app.js"), "const x = 1;")

	service := NewService(nil, Options{Extensions: []string{".GO"}})
	result, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "go", result.Files[0].Language)
}

// TestScanVendorDirectory 验证即使不配置排除目录，vendor 目录也会被识别并跳过。
func TestScanVendorDirectory(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "src", "app.js"), "const x = 1;")
	writeFixtureFile(t, filepath.Join(tempDir, "node_modules", "dep", "index.js"), "const y = 2;")

	service := NewService(nil, Options{ExcludeDirs: []string{}})
	result, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "src/app.js", result.Files[0].FileName)
}

// TestScanRecordsFileErrors 验证单文件失败只记录错误，不影响其他文件。
func TestScanRecordsFileErrors(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "ok.js"), "const x = 1;")
	writeFixtureFile(t, filepath.Join(tempDir, "huge.js"), strings.Repeat("const y = 2;\n", 100))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "binary.js"), []byte{0xff, 0xfe, 0x00}, 0o644))

	service := NewService(nil, Options{MaxFileSize: 512})
	result, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "ok.js", result.Files[0].FileName)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "binary.js", result.Errors[0].Path)
	assert.Contains(t, result.Errors[0].Error, ErrInvalidEncoding.Error())
	assert.Equal(t, "huge.js", result.Errors[1].Path)
	assert.Contains(t, result.Errors[1].Error, ErrFileTooLarge.Error())

	assert.Equal(t, 1, result.Summary.TotalFiles)
}

// TestScanUnsupportedSingleFile 验证单文件模式下不支持后缀会返回错误。
func TestScanUnsupportedSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "demo.txt")
	writeFixtureFile(t, filePath, "plain text")

	service := NewService(nil, Options{Workers: 1})
	_, err := service.ScanPath(context.Background(), filePath)
	require.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestScanEmptyPath(t *testing.T) {
	service := NewService(nil, Options{})
	_, err := service.ScanPath(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestScanCanceledContext(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "app.js"), "const x = 1;")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService(nil, Options{})
	_, err := service.ScanPath(ctx, tempDir)
	require.ErrorIs(t, err, context.Canceled)
}

// TestScanStrictCodeLines 验证扫描使用注入的分析器配置。
func TestScanStrictCodeLines(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "app.js"), "// note\nconst x = 1;\n")

	service := NewService(analysis.NewAnalyzer(analysis.WithStrictCodeLines(true)), Options{})
	result, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, result.Files[0].Lines.Code)
	assert.Equal(t, 1, result.Summary.TotalCodeLines)
}

func TestScanMetricsTextfile(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "src", "a.js"), "const a = 1;")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "b.py"), "b = 1\n")
	writeFixtureFile(t, filepath.Join(tempDir, "notes.md"), "# notes")

	metrics := NewMetrics()
	service := NewService(nil, Options{Metrics: metrics})
	_, err := service.ScanPath(context.Background(), tempDir)
	require.NoError(t, err)

	families, err := metrics.Gatherer().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "codemetrics_files_analyzed_total")
	assert.Contains(t, names, "codemetrics_scan_duration_seconds")

	textfile := filepath.Join(t.TempDir(), "codemetrics.prom")
	require.NoError(t, metrics.WriteTextfile(textfile))

	content, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `codemetrics_files_analyzed_total{language="javascript"} 1`)
	assert.Contains(t, string(content), `codemetrics_files_analyzed_total{language="python"} 1`)
	assert.Contains(t, string(content), `codemetrics_files_skipped_total{reason="extension"} 1`)
}
