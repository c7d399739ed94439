package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// classify 是测试辅助函数，按指定语言的语法对多行文本分类。
func classify(t *testing.T, path string, lines ...string) []LineKind {
	t.Helper()

	return ClassifyLines(lines, NewRegistry().Classify(path).Syntax())
}

// TestGoInlineCodeAndComment 验证同一行 code + comment 以及字符串内的注释标记。
func TestGoInlineCodeAndComment(t *testing.T) {
	kinds := classify(t, "main.go",
		"package main",
		"// top comment",
		"x := 1 // note",
		"",
		"/* block",
		"still block */",
		`s := "hello // world"`,
	)

	assert.Equal(t, []LineKind{
		LineCode, LineComment, LineMixed, LineBlank, LineComment, LineComment, LineCode,
	}, kinds)
}

// TestRustNestedBlockComment 验证 Rust 嵌套块注释不会提前结束。
func TestRustNestedBlockComment(t *testing.T) {
	kinds := classify(t, "lib.rs",
		"/* outer /* inner */ still",
		"comment */",
		"fn main() {}",
	)

	assert.Equal(t, []LineKind{LineComment, LineComment, LineCode}, kinds)
}

// TestPythonDocstringAndHash 验证三引号块与 # 注释。
func TestPythonDocstringAndHash(t *testing.T) {
	kinds := classify(t, "mod.py",
		`"""`,
		"module docs",
		`"""`,
		`value = "hello # world"`,
		"x = 1  # trailing",
		"# real comment",
	)

	assert.Equal(t, []LineKind{
		LineComment, LineComment, LineComment, LineCode, LineMixed, LineComment,
	}, kinds)
}

// TestRubyBeginEndComment 验证 Ruby 的 =begin/=end 块注释。
func TestRubyBeginEndComment(t *testing.T) {
	kinds := classify(t, "task.rb",
		"=begin",
		"comment body",
		"=end",
		`puts "ok"`,
	)

	assert.Equal(t, []LineKind{LineComment, LineComment, LineComment, LineCode}, kinds)
}

// TestUnterminatedQuoteResetsAtLineEnd 验证孤立引号不会把后续注释行吞成代码。
func TestUnterminatedQuoteResetsAtLineEnd(t *testing.T) {
	kinds := classify(t, "app.js",
		"const s = 'abc",
		"// comment",
	)

	assert.Equal(t, []LineKind{LineCode, LineComment}, kinds)
}

// TestTemplateLiteralSpansLines 验证反引号字符串跨行时内部的 // 仍算代码。
func TestTemplateLiteralSpansLines(t *testing.T) {
	kinds := classify(t, "app.js",
		"const s = `first",
		"// not a comment",
		"`;",
	)

	assert.Equal(t, []LineKind{LineCode, LineCode, LineCode}, kinds)
}
