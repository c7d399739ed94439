// Package languages 提供语言识别与按语言划分的词法模式表。
//
// 每种语言对应一个不可变的 PatternSet，由 Registry 在启动时一次性构建，
// 之后只读共享，任意数量的并发分析都可以直接引用同一个实例。
package languages

import "regexp"

// Language 是已知语言的枚举，Generic 为兜底语言。
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	C          Language = "c"
	CPP        Language = "cpp"
	CSharp     Language = "csharp"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	Go         Language = "go"
	Rust       Language = "rust"
	Swift      Language = "swift"
	Kotlin     Language = "kotlin"
	Scala      Language = "scala"
	Generic    Language = "generic"
)

// Family 表示语言的语法家族，决定使用哪一组决策关键字。
type Family string

const (
	// FamilyBrace 为花括号分块的语言（C 系、JS、Go 等）。
	FamilyBrace Family = "brace"
	// FamilyIndentation 为缩进分块的语言（Python）。
	FamilyIndentation Family = "indentation"
	// FamilyKeyword 为 end 关键字分块的语言（Ruby）。
	FamilyKeyword Family = "keyword"
	// FamilyGeneric 为未知语言的兜底家族。
	FamilyGeneric Family = "generic"
)

// DecisionPattern 是一个具名的决策点模式。
type DecisionPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// BlockDelimiter 描述一对块注释定界符。
type BlockDelimiter struct {
	Open  string
	Close string
}

// Syntax 描述行级状态机需要的注释与字符串语法。
type Syntax struct {
	LineComments  []string
	BlockComments []BlockDelimiter
	// NestedBlocks 为 true 时块注释可以嵌套（Rust、Swift、Kotlin、Scala）。
	NestedBlocks bool
	// Quotes 为单行字符串定界符，行尾自动复位。
	Quotes string
	// RawQuotes 为可跨行的字符串定界符，不处理转义。
	RawQuotes string
}

// PatternSet 汇总一种语言的注释、函数签名与决策点模式。
// 所有字段在构建后不再修改，访问器返回的切片均为副本。
type PatternSet struct {
	language    Language
	family      Family
	extensions  []string
	singleLine  *regexp.Regexp
	multiLine   *regexp.Regexp
	functions   []*regexp.Regexp
	decisions   []DecisionPattern
	diagnostics *regexp.Regexp
	keywords    map[string]struct{}
	syntax      Syntax
}

// Language 返回语言标识。
func (p *PatternSet) Language() Language {
	return p.language
}

// Family 返回语法家族。
func (p *PatternSet) Family() Family {
	return p.family
}

// Extensions 返回不带点号的后缀列表。
func (p *PatternSet) Extensions() []string {
	return append([]string(nil), p.extensions...)
}

// SingleLineComment 返回单行注释模式。
func (p *PatternSet) SingleLineComment() *regexp.Regexp {
	return p.singleLine
}

// MultiLineComment 返回块注释模式，可跨行匹配。
func (p *PatternSet) MultiLineComment() *regexp.Regexp {
	return p.multiLine
}

// FunctionPatterns 按顺序返回函数签名模式，每个模式的第 1 个捕获组为函数名。
func (p *PatternSet) FunctionPatterns() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), p.functions...)
}

// DecisionPatterns 按顺序返回决策点模式。
func (p *PatternSet) DecisionPatterns() []DecisionPattern {
	return append([]DecisionPattern(nil), p.decisions...)
}

// DiagnosticPattern 返回调试输出调用的模式。
func (p *PatternSet) DiagnosticPattern() *regexp.Regexp {
	return p.diagnostics
}

// IsControlKeyword 判断名称是否属于需要过滤的控制关键字。
func (p *PatternSet) IsControlKeyword(name string) bool {
	_, ok := p.keywords[name]
	return ok
}

// Syntax 返回行级状态机使用的语法描述。
func (p *PatternSet) Syntax() Syntax {
	return Syntax{
		LineComments:  append([]string(nil), p.syntax.LineComments...),
		BlockComments: append([]BlockDelimiter(nil), p.syntax.BlockComments...),
		NestedBlocks:  p.syntax.NestedBlocks,
		Quotes:        p.syntax.Quotes,
		RawQuotes:     p.syntax.RawQuotes,
	}
}
