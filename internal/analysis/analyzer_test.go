package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemetrics/internal/languages"
)

// sampleFiles 覆盖多种语言与边界输入，用于性质类测试。
var sampleFiles = map[string]string{
	"empty.js":  "",
	"f.js":      "function f(){ if(a){return 1;} }",
	"calls.js":  "if (x) foo();\nwhile (y) bar();\nfor (;;) {}\nfilter(xs);\nmatch(re);\nreturn(1);\n",
	"mod.py":    "def run(a, b):\n    if a and b:\n        return 1\n    return 0\n",
	"main.go":   "package main\n\n// main entry\nfunc main() {\n\tif x == nil {\n\t}\n}\n",
	"broken.c":  "int main( {\n  return 0;\n}}}\n\"unterminated\n",
	"weird.xyz": "}}}}{{{{ if while case ((((",
	"Main.java": "public class Main {\n  public static void main(String[] args) {\n    System.out.println(\"hi\");\n  }\n}\n",
}

// TestAnalyzeScenario 验证单文件场景的完整输出。
func TestAnalyzeScenario(t *testing.T) {
	result := Analyze("f.js", "function f(){ if(a){return 1;} }")

	assert.Equal(t, "f.js", result.FileName)
	assert.Equal(t, "javascript", result.Language)
	assert.Equal(t, 1, result.Functions.Count)
	assert.Equal(t, []string{"f"}, result.Functions.Names)
	assert.Equal(t, 2, result.Complexity.Total)
	assert.Equal(t, 1, result.Lines.Total)
}

// TestAnalyzeIsIdempotent 验证相同输入得到逐字段相同的结果。
func TestAnalyzeIsIdempotent(t *testing.T) {
	analyzer := NewAnalyzer()
	for path, content := range sampleFiles {
		assert.Equal(t, analyzer.Analyze(path, content), analyzer.Analyze(path, content), path)
	}
}

// TestAnalyzeInvariants 验证各阶段的不变量在所有样例上都成立。
func TestAnalyzeInvariants(t *testing.T) {
	analyzer := NewAnalyzer()
	registry := analyzer.Registry()

	for path, content := range sampleFiles {
		result := analyzer.Analyze(path, content)

		assert.Equal(t, result.Lines.Total-result.Lines.Empty, result.Lines.Code, path)
		assert.Equal(t, result.Comments.SingleLine+result.Comments.MultiLine, result.Comments.Total, path)

		sum := 1
		for _, count := range result.Complexity.Breakdown {
			sum += count
		}
		assert.Equal(t, sum, result.Complexity.Total, path)
		assert.GreaterOrEqual(t, result.Complexity.Total, 1, path)

		set := registry.Classify(path)
		for _, name := range result.Functions.Names {
			assert.False(t, set.IsControlKeyword(name), "%s: %s", path, name)
		}
		assert.GreaterOrEqual(t, result.Functions.Count, len(result.Functions.Names), path)

		quality := result.CodeQuality
		assert.GreaterOrEqual(t, quality.Score, 0, path)
		assert.LessOrEqual(t, quality.Score, 100, path)
		assert.Equal(t, quality.Summary.Critical+quality.Summary.Errors+quality.Summary.Warnings, quality.Summary.Total, path)
	}
}

// TestAnalyzeControlCallsNotFunctions 验证调用形控制语句全部被过滤。
func TestAnalyzeControlCallsNotFunctions(t *testing.T) {
	result := Analyze("calls.js", sampleFiles["calls.js"])

	assert.Equal(t, 0, result.Functions.Count)
	assert.Empty(t, result.Functions.Names)
}

// TestAnalyzeBrokenBrackets 验证括号问题进入 critical 级。
func TestAnalyzeBrokenBrackets(t *testing.T) {
	result := Analyze("broken.c", sampleFiles["broken.c"])

	require.NotEmpty(t, result.CodeQuality.Details.Critical)
	assert.Contains(t, result.CodeQuality.Details.Critical, "1 unclosed '(' bracket(s)")
	assert.Contains(t, result.CodeQuality.Details.Critical, "2 unmatched closing '}'")
	assert.Contains(t, result.CodeQuality.Details.Critical, "Possible unclosed string literal")
}

// TestAnalyzeStrictCodeLines 验证严格口径选项。
func TestAnalyzeStrictCodeLines(t *testing.T) {
	content := "# comment\nx = 1\n"

	canonical := NewAnalyzer().Analyze("mod.py", content)
	strict := NewAnalyzer(WithStrictCodeLines(true)).Analyze("mod.py", content)

	assert.Equal(t, 2, canonical.Lines.Code)
	assert.Equal(t, 1, strict.Lines.Code)
	assert.Equal(t, 1, strict.Lines.CommentOnly)
}

// TestAnalyzeUsesInjectedRegistry 验证可以注入独立构建的注册中心。
func TestAnalyzeUsesInjectedRegistry(t *testing.T) {
	registry := languages.NewRegistry()
	analyzer := NewAnalyzer(WithRegistry(registry), WithRegistry(nil))

	assert.Same(t, registry, analyzer.Registry())
	assert.Equal(t, "generic", analyzer.Analyze("notes.xyz", "x").Language)
}
