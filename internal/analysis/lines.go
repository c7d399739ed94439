package analysis

import (
	"strings"

	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// CountLines 按 "\n" 切分内容并统计总行数、空行数与代码行数。
// 末尾换行会产生一个额外的空段，这是刻意保留的计数口径。
func CountLines(content string) model.LineMetrics {
	lines := strings.Split(content, "\n")
	empty := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			empty++
		}
	}

	return model.LineMetrics{
		Total: len(lines),
		Empty: empty,
		Code:  len(lines) - empty,
	}
}

// CountLinesWithSyntax 在 CountLines 的基础上额外统计纯注释行。
// strict 为 true 时 Code 采用严格口径：Total - Empty - CommentOnly。
func CountLinesWithSyntax(content string, set *languages.PatternSet, strict bool) model.LineMetrics {
	metrics := CountLines(content)

	lines := strings.Split(content, "\n")
	for index, kind := range languages.ClassifyLines(lines, set.Syntax()) {
		// 块注释里的空白行已经计入 Empty，不重复计入 CommentOnly。
		if kind == languages.LineComment && strings.TrimSpace(lines[index]) != "" {
			metrics.CommentOnly++
		}
	}

	if strict {
		metrics.Code = metrics.Total - metrics.Empty - metrics.CommentOnly
	}
	return metrics
}
