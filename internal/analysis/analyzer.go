// Package analysis 实现基于词法模式表的单文件度量引擎。
//
// 引擎由五个阶段组成：行数、注释、复杂度、函数签名与质量启发式，
// 全部是 (content, PatternSet) 的纯函数，不做 I/O，也不会失败。
// 不构建语法树，所有度量都是刻意保留的词法近似。
package analysis

import (
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// Analyzer 组合语言识别与各度量阶段，对单个文件生成完整结果。
// Analyzer 构建后只读，可以被多个 goroutine 并发使用。
type Analyzer struct {
	registry        *languages.Registry
	strictCodeLines bool
}

// Option 用于定制 Analyzer。
type Option func(*Analyzer)

// WithStrictCodeLines 启用严格代码行口径：Code = Total - Empty - CommentOnly。
func WithStrictCodeLines(strict bool) Option {
	return func(a *Analyzer) {
		a.strictCodeLines = strict
	}
}

// WithRegistry 指定语言注册中心，默认使用进程级共享实例。
func WithRegistry(registry *languages.Registry) Option {
	return func(a *Analyzer) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// NewAnalyzer 创建分析器。
func NewAnalyzer(options ...Option) *Analyzer {
	analyzer := &Analyzer{registry: languages.Default()}
	for _, option := range options {
		option(analyzer)
	}
	return analyzer
}

// Registry 返回分析器使用的语言注册中心。
func (a *Analyzer) Registry() *languages.Registry {
	return a.registry
}

// Analyze 对单个文件内容执行全部度量阶段。
// 相同的 (filePath, content) 总是得到逐字段相同的结果。
func (a *Analyzer) Analyze(filePath string, content string) model.FileAnalysisResult {
	set := a.registry.Classify(filePath)

	lines := CountLinesWithSyntax(content, set, a.strictCodeLines)
	comments := ExtractComments(content, set)
	complexity := EstimateComplexity(content, set)
	functions := ExtractFunctions(content, set)
	quality := EvaluateQualityWith(content, set, QualityInputs{
		Lines:     lines,
		Comments:  comments,
		Functions: functions,
	})

	return model.FileAnalysisResult{
		FileName:    filePath,
		Language:    string(set.Language()),
		Lines:       lines,
		Comments:    comments,
		Complexity:  complexity,
		Functions:   functions,
		CodeQuality: quality,
	}
}

// Analyze 使用默认配置分析单个文件。
func Analyze(filePath string, content string) model.FileAnalysisResult {
	return NewAnalyzer().Analyze(filePath, content)
}
