package languages

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassifyLines 使用表驱动的注释/字符串状态机对每一行进行分类。
// 状态机在行与行之间保留块注释与原始字符串状态，
// 普通引号字符串在行尾复位，避免一个孤立引号吞掉后续整个文件。
func ClassifyLines(lines []string, syntax Syntax) []LineKind {
	engine := &lineFSMEngine{syntax: syntax}
	kinds := make([]LineKind, 0, len(lines))
	for _, line := range lines {
		currentLine := normalizeLine(line)
		hasCode, hasComment := engine.processLine(currentLine)
		kinds = append(kinds, classifyLine(currentLine, hasCode, hasComment))
	}
	return kinds
}

// lineFSMEngine 维护分析时的跨行状态。
type lineFSMEngine struct {
	syntax Syntax

	// blockDepth > 0 表示处于块注释中；仅在 NestedBlocks 时会大于 1。
	blockDepth int
	// block 为当前生效的块注释定界符。
	block BlockDelimiter
	// quote 为当前所在字符串的定界符，0 表示不在字符串中。
	quote byte
	// rawQuote 表示 quote 是否为可跨行的原始字符串。
	rawQuote bool
}

// processLine 扫描单行并更新状态，返回该行是否包含 code/comment。
func (e *lineFSMEngine) processLine(line string) (bool, bool) {
	hasCode := false
	hasComment := false

	// 先根据跨行状态做初始赋值：
	// 上一行结束时仍在块注释中则本行天然包含 comment，仍在原始字符串中则包含 code。
	if e.blockDepth > 0 {
		hasComment = true
	}
	if e.quote != 0 {
		hasCode = true
	}

	for idx := 0; idx < len(line); {
		rest := line[idx:]

		if e.blockDepth > 0 {
			hasComment = true
			if strings.HasPrefix(rest, e.block.Close) {
				e.blockDepth--
				idx += len(e.block.Close)
				continue
			}
			if e.syntax.NestedBlocks && strings.HasPrefix(rest, e.block.Open) {
				e.blockDepth++
				idx += len(e.block.Open)
				continue
			}
			idx++
			continue
		}

		if e.quote != 0 {
			hasCode = true
			current := line[idx]
			// 普通字符串里反斜杠会吞掉下一个字符，避免误把 \" 当结束引号。
			if !e.rawQuote && current == '\\' && idx+1 < len(line) {
				idx += 2
				continue
			}
			if current == e.quote {
				e.quote = 0
				e.rawQuote = false
			}
			idx++
			continue
		}

		current, size := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(current) {
			idx += size
			continue
		}

		if e.startsLineComment(rest) {
			return hasCode, true
		}

		if block, ok := e.startsBlockComment(rest); ok {
			hasComment = true
			e.block = block
			e.blockDepth = 1
			idx += len(block.Open)
			continue
		}

		if current < utf8.RuneSelf {
			quote := byte(current)
			if strings.IndexByte(e.syntax.Quotes, quote) >= 0 {
				hasCode = true
				e.quote = quote
				e.rawQuote = false
				idx++
				continue
			}
			if strings.IndexByte(e.syntax.RawQuotes, quote) >= 0 {
				hasCode = true
				e.quote = quote
				e.rawQuote = true
				idx++
				continue
			}
		}

		hasCode = true
		idx += size
	}

	if e.quote != 0 && !e.rawQuote {
		e.quote = 0
	}

	return hasCode, hasComment
}

func (e *lineFSMEngine) startsLineComment(rest string) bool {
	for _, marker := range e.syntax.LineComments {
		if strings.HasPrefix(rest, marker) {
			return true
		}
	}
	return false
}

func (e *lineFSMEngine) startsBlockComment(rest string) (BlockDelimiter, bool) {
	for _, block := range e.syntax.BlockComments {
		if strings.HasPrefix(rest, block.Open) {
			return block, true
		}
	}
	return BlockDelimiter{}, false
}
