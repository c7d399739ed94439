package analysis

import (
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// QualityInputs 是质量检查中比率类启发式依赖的其他阶段结果。
type QualityInputs struct {
	Lines     model.LineMetrics
	Comments  model.CommentMetrics
	Functions model.FunctionMetrics
}

// EvaluateQuality 独立运行质量检查，所需的行、注释与函数统计在内部计算。
func EvaluateQuality(content string, set *languages.PatternSet) model.QualityReport {
	return EvaluateQualityWith(content, set, QualityInputs{
		Lines:     CountLines(content),
		Comments:  ExtractComments(content, set),
		Functions: ExtractFunctions(content, set),
	})
}

// EvaluateQualityWith 在遮蔽视图上运行括号、语法与风格三类启发式，
// 按 critical/error/warning 分级并计算 0~100 的得分。
func EvaluateQualityWith(content string, set *languages.PatternSet, inputs QualityInputs) model.QualityReport {
	code := maskedView(content, set)

	var critical []string
	critical = append(critical, checkBalancedBrackets(code)...)
	critical = append(critical, checkMissingTerminators(code)...)
	critical = append(critical, checkUnclosedStrings(content)...)

	var errors []string
	errors = append(errors, checkLooseEquality(code)...)
	errors = append(errors, checkUnusedIdentifiers(code)...)
	errors = append(errors, checkBracelessConditionals(code)...)
	errors = append(errors, checkNullComparisons(code)...)

	var warnings []string
	warnings = append(warnings, checkDiagnosticCalls(code, set)...)
	warnings = append(warnings, checkLongLines(content)...)
	warnings = append(warnings, checkDeepNesting(code)...)
	warnings = append(warnings, checkCommentRatio(inputs.Lines, inputs.Comments)...)
	warnings = append(warnings, checkFunctionLength(inputs.Lines, inputs.Functions)...)

	return model.NewQualityReport(critical, errors, warnings)
}
