package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codemetrics/internal/languages"
)

// TestCountLinesTrailingNewline 验证末尾换行会多出一个空段。
func TestCountLinesTrailingNewline(t *testing.T) {
	metrics := CountLines("a\n\nb\n")

	assert.Equal(t, 4, metrics.Total)
	assert.Equal(t, 2, metrics.Empty)
	assert.Equal(t, 2, metrics.Code)
}

// TestCountLinesEmptyContent 验证空内容仍是一行空行。
func TestCountLinesEmptyContent(t *testing.T) {
	metrics := CountLines("")

	assert.Equal(t, 1, metrics.Total)
	assert.Equal(t, 1, metrics.Empty)
	assert.Equal(t, 0, metrics.Code)
}

// TestCountLinesWhitespaceOnly 验证只含空白字符的行算作空行。
func TestCountLinesWhitespaceOnly(t *testing.T) {
	metrics := CountLines("  \t\r\nx\n   ")

	assert.Equal(t, 3, metrics.Total)
	assert.Equal(t, 2, metrics.Empty)
	assert.Equal(t, 1, metrics.Code)
}

// TestCountLinesStrictMode 验证严格口径额外扣除纯注释行。
func TestCountLinesStrictMode(t *testing.T) {
	set := languages.NewRegistry().Classify("app.js")
	content := "// header\n" +
		"const a = 1;\n" +
		"/* block\n" +
		"  more */\n" +
		"\n" +
		"let b = 2; // tail\n"

	canonical := CountLinesWithSyntax(content, set, false)
	assert.Equal(t, 7, canonical.Total)
	assert.Equal(t, 2, canonical.Empty)
	assert.Equal(t, 5, canonical.Code)
	assert.Equal(t, 3, canonical.CommentOnly)

	strict := CountLinesWithSyntax(content, set, true)
	assert.Equal(t, 3, strict.CommentOnly)
	assert.Equal(t, 2, strict.Code)
	assert.Equal(t, strict.Total-strict.Empty-strict.CommentOnly, strict.Code)
}
