package analysis

import (
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// baselineComplexity 是没有任何决策点时的复杂度。
const baselineComplexity = 1

// EstimateComplexity 计算累加式（类 McCabe）复杂度。
//
// 计算在去掉注释与空行的副本上进行，副本不会回写给调用方。
// 这是词法层面的计数，出现在非执行位置的关键字同样会被计入。
func EstimateComplexity(content string, set *languages.PatternSet) model.ComplexityMetrics {
	codeOnly := dropBlankLines(stripComments(content, set))

	metrics := model.ComplexityMetrics{
		Total:     baselineComplexity,
		Breakdown: make(map[string]int),
	}

	for _, decision := range set.DecisionPatterns() {
		count := len(decision.Pattern.FindAllStringIndex(codeOnly, -1))
		if count > 0 {
			metrics.Breakdown[decision.Name] = count
			metrics.Total += count
		}
	}

	return metrics
}
