package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

const (
	diagnosticCallThreshold = 5
	maxLineLength           = 120
	maxNestingDepth         = 5
	minCommentRatio         = 0.10
	maxLinesPerFunction     = 50
)

func checkDiagnosticCalls(code string, set *languages.PatternSet) []string {
	count := len(set.DiagnosticPattern().FindAllStringIndex(code, -1))
	if count > diagnosticCallThreshold {
		return []string{fmt.Sprintf("%d diagnostic print statements found - consider removing for production", count)}
	}
	return nil
}

// checkLongLines 在原始内容上按字符数（rune）检查超长行。
func checkLongLines(content string) []string {
	long := 0
	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > maxLineLength {
			long++
		}
	}
	if long > 0 {
		return []string{fmt.Sprintf("%d lines exceed %d characters", long, maxLineLength)}
	}
	return nil
}

// maxBraceDepth 返回花括号的最大嵌套深度，多余的 } 不会让深度变成负数。
func maxBraceDepth(code string) int {
	maxDepth := 0
	depth := 0
	for _, char := range code {
		switch char {
		case '{':
			depth++
			maxDepth = max(maxDepth, depth)
		case '}':
			depth = max(depth-1, 0)
		}
	}
	return maxDepth
}

func checkDeepNesting(code string) []string {
	if depth := maxBraceDepth(code); depth > maxNestingDepth {
		return []string{fmt.Sprintf("Deep nesting detected (%d levels) - consider refactoring", depth)}
	}
	return nil
}

func checkCommentRatio(lines model.LineMetrics, comments model.CommentMetrics) []string {
	if lines.Total == 0 {
		return nil
	}

	ratio := float64(comments.Total) / float64(lines.Total)
	if ratio < minCommentRatio {
		return []string{fmt.Sprintf(
			"Low comment ratio (%d%%) - consider adding more documentation",
			int(math.Round(ratio*100)),
		)}
	}
	return nil
}

func checkFunctionLength(lines model.LineMetrics, functions model.FunctionMetrics) []string {
	if functions.Count > 0 && float64(lines.Code)/float64(functions.Count) > maxLinesPerFunction {
		return []string{"Functions may be too long - consider breaking them down"}
	}
	return nil
}
