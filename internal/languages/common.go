package languages

import "strings"

// LineKind 是行级状态机对单行的分类结果。
type LineKind int

const (
	// LineBlank 表示既没有代码也没有注释的空白行。
	LineBlank LineKind = iota
	// LineCode 表示只包含代码的行。
	LineCode
	// LineComment 表示只包含注释的行。
	LineComment
	// LineMixed 表示同一行既有代码又有注释（例如: x := 1 // note）。
	LineMixed
)

// normalizeLine 用于去除行尾的回车符，适配 Windows 的 \r\n。
func normalizeLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// classifyLine 根据状态机输出的标记计算行类型。
//
// 约束说明：
// - 空白行判定要求：去掉空白字符后为空，且没有 code/comment 标记
// - 块注释或跨行字符串中的空行依然分别算作 comment/code
func classifyLine(line string, hasCode bool, hasComment bool) LineKind {
	switch {
	case hasCode && hasComment:
		return LineMixed
	case hasCode:
		return LineCode
	case hasComment:
		return LineComment
	case strings.TrimSpace(line) == "":
		return LineBlank
	default:
		return LineCode
	}
}
