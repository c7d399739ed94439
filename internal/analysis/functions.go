package analysis

import (
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// ExtractFunctions 识别函数形签名。
//
// 只去掉注释（保留空行，使 ^ 锚定的模式仍按原始行首匹配），
// 再按顺序应用全部签名模式。控制关键字会被当作误报丢弃；
// Count 为接受的匹配次数（含重复），Names 为去重后的名称。
func ExtractFunctions(content string, set *languages.PatternSet) model.FunctionMetrics {
	codeOnly := stripComments(content, set)

	count := 0
	names := make([]string, 0)
	seen := make(map[string]struct{})

	for _, pattern := range set.FunctionPatterns() {
		for _, match := range pattern.FindAllStringSubmatch(codeOnly, -1) {
			if len(match) < 2 || match[1] == "" {
				continue
			}

			name := match[1]
			if set.IsControlKeyword(name) {
				continue
			}

			count++
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}

	return model.FunctionMetrics{
		Count: count,
		Names: names,
	}
}
