// Package model 定义 codemetrics 的核心数据模型。
// 这些结构会被分析引擎、扫描器、输出层和命令层共同使用，
// 每次分析都会重新分配，调用方独占返回值。
package model

// LineMetrics 表示单文件的行级统计值。
//
// 注意：
// - Total 按 "\n" 切分计数，末尾换行会多出一个空段
// - Empty 为去掉空白后为空的行
// - 默认口径 Code = Total - Empty；严格口径额外减去 CommentOnly
type LineMetrics struct {
	Total       int `json:"total" yaml:"total"`
	Empty       int `json:"empty" yaml:"empty"`
	Code        int `json:"code" yaml:"code"`
	CommentOnly int `json:"commentOnly" yaml:"commentOnly"`
}

// CommentMetrics 表示注释出现次数。
// 单行与块注释两个模式各自独立扫描原文，重叠部分不去重。
type CommentMetrics struct {
	Total      int `json:"total" yaml:"total"`
	SingleLine int `json:"singleLine" yaml:"singleLine"`
	MultiLine  int `json:"multiLine" yaml:"multiLine"`
}

// ComplexityMetrics 表示累加式复杂度。
// Total 恒等于 1 + Breakdown 中所有计数之和。
type ComplexityMetrics struct {
	Total     int            `json:"total" yaml:"total"`
	Breakdown map[string]int `json:"breakdown" yaml:"breakdown"`
}

// FunctionMetrics 表示函数签名统计。
// Count 包含重复匹配，Names 为去重后的名称列表（按首次出现顺序）。
type FunctionMetrics struct {
	Count int      `json:"count" yaml:"count"`
	Names []string `json:"names" yaml:"names"`
}

// FileAnalysisResult 是单文件分析的完整输出。
type FileAnalysisResult struct {
	FileName    string            `json:"fileName" yaml:"fileName"`
	Language    string            `json:"language" yaml:"language"`
	Lines       LineMetrics       `json:"lines" yaml:"lines"`
	Comments    CommentMetrics    `json:"comments" yaml:"comments"`
	Complexity  ComplexityMetrics `json:"complexity" yaml:"complexity"`
	Functions   FunctionMetrics   `json:"functions" yaml:"functions"`
	CodeQuality QualityReport     `json:"codeQuality" yaml:"codeQuality"`
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、项目汇总和错误列表。
type ScanResult struct {
	ScannedPath string               `json:"scannedPath" yaml:"scannedPath"`
	Files       []FileAnalysisResult `json:"files" yaml:"files"`
	Summary     Summary              `json:"summary" yaml:"summary"`
	Errors      []ScanError          `json:"errors" yaml:"errors"`
}
