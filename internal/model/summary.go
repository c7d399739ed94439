package model

import "math"

// Summary 表示多文件分析结果的项目级汇总。
type Summary struct {
	TotalFiles           int            `json:"totalFiles" yaml:"totalFiles"`
	TotalLines           int            `json:"totalLines" yaml:"totalLines"`
	TotalCodeLines       int            `json:"totalCodeLines" yaml:"totalCodeLines"`
	TotalFunctions       int            `json:"totalFunctions" yaml:"totalFunctions"`
	AvgComplexity        int            `json:"avgComplexity" yaml:"avgComplexity"`
	AvgQualityScore      int            `json:"avgQualityScore" yaml:"avgQualityScore"`
	LanguageDistribution map[string]int `json:"languageDistribution" yaml:"languageDistribution"`
}

// Accumulator 以可交换、可结合的方式累加单文件结果。
// 零值可直接使用；多个 Accumulator 可以通过 Merge 合并。
type Accumulator struct {
	files           int
	lines           int
	codeLines       int
	functions       int
	complexitySum   int
	qualityScoreSum int
	languages       map[string]int
}

// Add 将一个文件的分析结果叠加到累加器。
func (a *Accumulator) Add(result FileAnalysisResult) {
	if a.languages == nil {
		a.languages = make(map[string]int)
	}

	a.files++
	a.lines += result.Lines.Total
	a.codeLines += result.Lines.Code
	a.functions += result.Functions.Count
	a.complexitySum += result.Complexity.Total
	a.qualityScoreSum += result.CodeQuality.Score
	a.languages[result.Language]++
}

// Merge 合并另一个累加器的状态。
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	if a.languages == nil {
		a.languages = make(map[string]int)
	}

	a.files += other.files
	a.lines += other.lines
	a.codeLines += other.codeLines
	a.functions += other.functions
	a.complexitySum += other.complexitySum
	a.qualityScoreSum += other.qualityScoreSum
	for language, count := range other.languages {
		a.languages[language] += count
	}
}

// Summary 生成汇总结果。没有任何文件时返回全零汇总与空分布。
func (a *Accumulator) Summary() Summary {
	distribution := make(map[string]int, len(a.languages))
	for language, count := range a.languages {
		distribution[language] = count
	}

	summary := Summary{
		TotalFiles:           a.files,
		TotalLines:           a.lines,
		TotalCodeLines:       a.codeLines,
		TotalFunctions:       a.functions,
		LanguageDistribution: distribution,
	}
	if a.files == 0 {
		return summary
	}

	summary.AvgComplexity = roundedAverage(a.complexitySum, a.files)
	summary.AvgQualityScore = roundedAverage(a.qualityScoreSum, a.files)
	return summary
}

// Summarize 对一组文件结果做一次完整折叠。
func Summarize(results []FileAnalysisResult) Summary {
	var acc Accumulator
	for _, result := range results {
		acc.Add(result)
	}
	return acc.Summary()
}

func roundedAverage(sum int, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
