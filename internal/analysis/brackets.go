package analysis

import "fmt"

// bracketKinds 固定检查顺序，保证输出稳定。
var bracketKinds = []struct {
	open  rune
	close rune
}{
	{open: '(', close: ')'},
	{open: '[', close: ']'},
	{open: '{', close: '}'},
}

// bracketBalance 记录每种括号多余的闭合符与未闭合的开括号数量。
type bracketBalance struct {
	unmatched map[rune]int
	unclosed  map[rune]int
}

// scanBrackets 逐字符维护每种括号的深度。
// 深度为 0 时遇到闭合符记为多余闭合并把深度钳在 0，
// 避免一个孤立闭合符导致后续括号全部连锁误报。
func scanBrackets(code string) bracketBalance {
	depth := make(map[rune]int, len(bracketKinds))
	openerOf := make(map[rune]rune, len(bracketKinds))
	for _, kind := range bracketKinds {
		depth[kind.open] = 0
		openerOf[kind.close] = kind.open
	}

	balance := bracketBalance{
		unmatched: make(map[rune]int),
		unclosed:  make(map[rune]int),
	}

	for _, char := range code {
		if _, ok := depth[char]; ok {
			depth[char]++
			continue
		}
		opener, ok := openerOf[char]
		if !ok {
			continue
		}
		if depth[opener] == 0 {
			balance.unmatched[char]++
			continue
		}
		depth[opener]--
	}

	for opener, count := range depth {
		if count > 0 {
			balance.unclosed[opener] = count
		}
	}
	return balance
}

// checkBalancedBrackets 把括号扫描结果转为问题消息，同一种括号的同类问题合并为一条。
func checkBalancedBrackets(code string) []string {
	balance := scanBrackets(code)

	var issues []string
	for _, kind := range bracketKinds {
		if count := balance.unmatched[kind.close]; count > 0 {
			issues = append(issues, fmt.Sprintf("%d unmatched closing '%c'", count, kind.close))
		}
	}
	for _, kind := range bracketKinds {
		if count := balance.unclosed[kind.open]; count > 0 {
			issues = append(issues, fmt.Sprintf("%d unclosed '%c' bracket(s)", count, kind.open))
		}
	}
	return issues
}
