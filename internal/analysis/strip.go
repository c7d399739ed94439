package analysis

import (
	"regexp"
	"strings"

	"codemetrics/internal/languages"
)

// literalPattern 匹配带转义的字符串字面量。
// 双引号与单引号字符串不跨行，反引号模板字符串可以跨行。
var literalPattern = regexp.MustCompile(
	`"[^"\\\n]*(?:\\.[^"\\\n]*)*"` +
		`|'[^'\\\n]*(?:\\.[^'\\\n]*)*'` +
		"|`[^`\\\\]*(?:\\\\[\\s\\S][^`\\\\]*)*`")

// literalPlaceholder 是字面量被遮蔽后的固定替代文本。
const literalPlaceholder = `""`

// stripComments 去掉块注释与单行注释，保留空行。
// 先去块注释，避免 /* a // b */ 这类写法把块注释的结束符一起吃掉。
func stripComments(content string, set *languages.PatternSet) string {
	withoutBlocks := set.MultiLineComment().ReplaceAllString(content, "")
	return set.SingleLineComment().ReplaceAllString(withoutBlocks, "")
}

// dropBlankLines 删除去掉空白后为空的行。
func dropBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// maskedView 构建质量检查使用的视图：字面量替换为占位符后再去掉注释，
// 防止后续检查命中字符串或注释中的文本。
func maskedView(content string, set *languages.PatternSet) string {
	masked := literalPattern.ReplaceAllLiteralString(content, literalPlaceholder)
	return stripComments(masked, set)
}
