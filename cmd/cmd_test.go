package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemetrics/internal/config"
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// runCommand 执行根命令并返回标准输出与标准错误。
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("test", languages.NewRegistry())
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "codemetrics version test ("), stdout)
	assert.Contains(t, stdout, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestLanguageCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "language")
	require.NoError(t, err)
	assert.Contains(t, stdout, "typescript")
	assert.Contains(t, stdout, ".rb")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "app.js")
	writeSource(t, filePath, "// entry\nfunction main() {\n  return 1;\n}\n")

	stdout, _, err := runCommand(t, "analyze", filePath, "--format", "json", "--strict")
	require.NoError(t, err)

	var result model.FileAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "javascript", result.Language)
	assert.Equal(t, []string{"main"}, result.Functions.Names)
	assert.Equal(t, 1, result.Lines.CommentOnly)
	assert.Equal(t, 3, result.Lines.Code)
}

func TestAnalyzeCommandUnknownExtension(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "notes.txt")
	writeSource(t, filePath, "plain text\n")

	stdout, _, err := runCommand(t, "analyze", filePath, "--format", "json")
	require.NoError(t, err)

	var result model.FileAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "generic", result.Language)
}

func TestAnalyzeCommandInvalidFormat(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "app.js")
	writeSource(t, filePath, "const x = 1;\n")

	_, _, err := runCommand(t, "analyze", filePath, "--format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestScanCommandExportsFile(t *testing.T) {
	projectDir := t.TempDir()
	writeSource(t, filepath.Join(projectDir, "src", "app.ts"), "function run(): number {\n  return 1;\n}\n")
	writeSource(t, filepath.Join(projectDir, "lib", "util.py"), "def util():\n    return 2\n")

	outputPath := filepath.Join(t.TempDir(), "out", "result.json")
	stdout, stderr, err := runCommand(t, "scan", projectDir, "--format", "yaml", "--output", outputPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "totalFiles: 2")
	assert.Contains(t, stderr, "Report exported to")

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal(content, &result))
	require.Len(t, result.Files, 2)
	assert.Equal(t, "lib/util.py", result.Files[0].FileName)
	assert.Equal(t, "src/app.ts", result.Files[1].FileName)
}

func TestScanCommandExtensionFlag(t *testing.T) {
	projectDir := t.TempDir()
	writeSource(t, filepath.Join(projectDir, "main.go"), "package main\n\nfunc main() {}\n")
	writeSource(t, filepath.Join(projectDir, "app.js"), "const x = 1;\n")

	stdout, _, err := runCommand(t, "scan", projectDir, "--format", "json", "--ext", ".go")
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Files, 1)
	assert.Equal(t, "go", result.Files[0].Language)
}

func TestScanCommandMetricsTextfile(t *testing.T) {
	projectDir := t.TempDir()
	writeSource(t, filepath.Join(projectDir, "app.js"), "const x = 1;\n")
	textfile := filepath.Join(t.TempDir(), "codemetrics.prom")

	_, _, err := runCommand(t, "scan", projectDir, "--format", "json", "--metrics-textfile", textfile)
	require.NoError(t, err)

	content, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "codemetrics_files_analyzed_total")
}

func TestScanCommandConfigFile(t *testing.T) {
	projectDir := t.TempDir()
	writeSource(t, filepath.Join(projectDir, "app.js"), "const x = 1;\n")

	configPath := filepath.Join(t.TempDir(), "codemetrics.yaml")
	writeSource(t, configPath, "report:\n  format: json\nscan:\n  workers: 2\n")

	stdout, _, err := runCommand(t, "--config", configPath, "scan", projectDir)
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 1, result.Summary.TotalFiles)
}

func TestScanCommandRejectsPathWithRepo(t *testing.T) {
	_, _, err := runCommand(t, "scan", ".", "--repo", "https://example.com/repo.git")
	require.ErrorIs(t, err, errPathWithRepo)
}
