package analysis

import (
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// ExtractComments 统计单行注释与块注释的出现次数。
// 两个模式都扫描未处理的原始内容，彼此独立，重叠的匹配不会去重。
func ExtractComments(content string, set *languages.PatternSet) model.CommentMetrics {
	singleLine := len(set.SingleLineComment().FindAllStringIndex(content, -1))
	multiLine := len(set.MultiLineComment().FindAllStringIndex(content, -1))

	return model.CommentMetrics{
		Total:      singleLine + multiLine,
		SingleLine: singleLine,
		MultiLine:  multiLine,
	}
}
