package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func result(language string, total, code, functions, complexity, score int) FileAnalysisResult {
	return FileAnalysisResult{
		Language:    language,
		Lines:       LineMetrics{Total: total, Code: code},
		Functions:   FunctionMetrics{Count: functions},
		Complexity:  ComplexityMetrics{Total: complexity},
		CodeQuality: QualityReport{Score: score},
	}
}

// TestSummarizeEmpty 验证零文件时返回全零汇总与空分布。
func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalFiles)
	assert.Equal(t, 0, summary.AvgComplexity)
	assert.Equal(t, 0, summary.AvgQualityScore)
	assert.NotNil(t, summary.LanguageDistribution)
	assert.Empty(t, summary.LanguageDistribution)
}

// TestSummarizeTotalsAndRoundedAverages 验证累计值与四舍五入的平均值。
func TestSummarizeTotalsAndRoundedAverages(t *testing.T) {
	summary := Summarize([]FileAnalysisResult{
		result("javascript", 10, 8, 2, 2, 90),
		result("python", 5, 4, 1, 3, 85),
		result("javascript", 1, 1, 0, 1, 100),
	})

	assert.Equal(t, Summary{
		TotalFiles:           3,
		TotalLines:           16,
		TotalCodeLines:       13,
		TotalFunctions:       3,
		AvgComplexity:        2,
		AvgQualityScore:      92,
		LanguageDistribution: map[string]int{"javascript": 2, "python": 1},
	}, summary)
}

// TestAccumulatorMergeIsOrderIndependent 验证折叠顺序不影响结果。
func TestAccumulatorMergeIsOrderIndependent(t *testing.T) {
	first := result("go", 3, 2, 1, 4, 70)
	second := result("rust", 7, 6, 2, 5, 75)

	var left, right Accumulator
	left.Add(first)
	right.Add(second)
	left.Merge(&right)

	var reversed Accumulator
	reversed.Add(second)
	reversed.Add(first)

	assert.Equal(t, reversed.Summary(), left.Summary())
	assert.Equal(t, 73, left.Summary().AvgQualityScore)
	assert.Equal(t, 5, left.Summary().AvgComplexity)
}
