package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

const missingTerminatorThreshold = 5

var (
	// controlLinePrefix 匹配以控制关键字开头、本身不需要语句终止符的行。
	controlLinePrefix = regexp.MustCompile(`^(?:if|else|for|while|switch|function|class)\b`)
	// quoteChars 用于粗略的引号奇偶校验，不处理转义。
	quoteChars = regexp.MustCompile("[\"'`]")
	// declarationPattern 匹配 var/let/const 声明的标识符。
	declarationPattern = regexp.MustCompile(`\b(?:var|let|const)\s+(\w+)`)
	// conditionalStart 匹配 if 条件的起始括号。
	conditionalStart = regexp.MustCompile(`\bif\s*\(`)
	// nullComparison 匹配与 null 的相等/不等比较。
	nullComparison = regexp.MustCompile(`[=!]=\s*null\b|\bnull\s*[=!]=`)
)

// checkMissingTerminators 统计既不以 ; { } 结尾、也不以控制关键字开头的非空行，
// 数量超过阈值时报告。
func checkMissingTerminators(code string) []string {
	missing := 0
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, ";") ||
			strings.HasSuffix(trimmed, "{") ||
			strings.HasSuffix(trimmed, "}") {
			continue
		}
		if controlLinePrefix.MatchString(trimmed) {
			continue
		}
		missing++
	}

	if missing > missingTerminatorThreshold {
		return []string{fmt.Sprintf("%d statements missing terminators", missing)}
	}
	return nil
}

// checkUnclosedStrings 对原始内容中的引号字符做奇偶校验。
func checkUnclosedStrings(content string) []string {
	if len(quoteChars.FindAllStringIndex(content, -1))%2 != 0 {
		return []string{"Possible unclosed string literal"}
	}
	return nil
}

// countLooseEquality 统计 == 与 != 的出现次数，=== 与 !== 不计入。
func countLooseEquality(code string) int {
	count := 0
	for idx := 0; idx+1 < len(code); idx++ {
		current := code[idx]
		if (current != '=' && current != '!') || code[idx+1] != '=' {
			continue
		}
		if idx+2 < len(code) && code[idx+2] == '=' {
			idx += 2
			continue
		}
		// <== 与 >== 这类组合不是相等比较。
		if current == '=' && idx > 0 && strings.IndexByte("=!<>", code[idx-1]) >= 0 {
			continue
		}
		count++
		idx++
	}
	return count
}

func checkLooseEquality(code string) []string {
	if count := countLooseEquality(code); count > 0 {
		return []string{fmt.Sprintf("%d instances of loose equality (== or !=) - use === or !==", count)}
	}
	return nil
}

// checkUnusedIdentifiers 对每个声明的标识符统计整词出现次数，
// 只出现一次（即仅有声明）时单独报告。遮蔽、解构与重新赋值都不做建模。
func checkUnusedIdentifiers(code string) []string {
	var issues []string
	reported := make(map[string]struct{})

	for _, match := range declarationPattern.FindAllStringSubmatch(code, -1) {
		name := match[1]
		if _, ok := reported[name]; ok {
			continue
		}

		usage := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if len(usage.FindAllStringIndex(code, -1)) <= 1 {
			reported[name] = struct{}{}
			issues = append(issues, fmt.Sprintf("Variable '%s' appears to be unused", name))
		}
	}
	return issues
}

// countBracelessConditionals 统计 if (...) 之后紧跟的不是 { 的次数。
// 条件括号按配对扫描，因此 if (f(x)) { 不会误报。
func countBracelessConditionals(code string) int {
	count := 0
	for _, loc := range conditionalStart.FindAllStringIndex(code, -1) {
		end, ok := matchingParen(code, loc[1]-1)
		if !ok {
			continue
		}

		next := strings.TrimLeft(code[end+1:], " \t\r\n")
		if next != "" && next[0] != '{' {
			count++
		}
	}
	return count
}

// matchingParen 返回 open 位置的左括号对应的右括号位置。
func matchingParen(code string, open int) (int, bool) {
	depth := 0
	for idx := open; idx < len(code); idx++ {
		switch code[idx] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return idx, true
			}
		}
	}
	return 0, false
}

func checkBracelessConditionals(code string) []string {
	if count := countBracelessConditionals(code); count > 0 {
		return []string{fmt.Sprintf("%d if statements without braces", count)}
	}
	return nil
}

func checkNullComparisons(code string) []string {
	if count := len(nullComparison.FindAllStringIndex(code, -1)); count > 0 {
		return []string{fmt.Sprintf("%d potential null comparison issues", count)}
	}
	return nil
}
