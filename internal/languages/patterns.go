package languages

import "regexp"

// controlKeywords 是所有语言共用的函数名黑名单。
// 这些名称来自 if(...)、while(...) 之类的调用形语法，不是真正的函数签名。
var controlKeywords = []string{"if", "while", "for", "switch", "catch", "return", "filter", "match"}

// 注释模式。
const (
	slashLineComment = `//.*`
	hashLineComment  = `#.*`
	slashOrHashLine  = `//.*|#.*`
	cBlockComment    = `/\*[\s\S]*?\*/`
	pythonDocstring  = `"""[\s\S]*?"""|'''[\s\S]*?'''`
	rubyBlockComment = `=begin[\s\S]*?=end`
)

// 函数签名模式，第 1 个捕获组是函数名。
const (
	lineStartCall    = `(?m)^\s*([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\(`
	jsFunctionDecl   = `\b(?:function|async\s+function)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\(`
	jsArrowAssign    = `\b(?:const|let|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`
	pythonDef        = `(?m)^\s*def\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`
	pythonAsyncDef   = `(?m)^\s*async\s+def\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`
	javaMethod       = `(?:public|private|protected)?\s*(?:static)?\s*(?:\w+\s+)?([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\([^)]*\)\s*\{`
	cFunction        = `(?:\w+\s+)*([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\)\s*\{`
	csharpMethod     = `(?:public|private|protected|internal)?\s*(?:static)?\s*(?:\w+\s+)?([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\([^)]*\)\s*\{`
	phpFunction      = `\bfunction\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`
	rubyDef          = `\bdef\s+(?:self\.)?([a-zA-Z_][a-zA-Z0-9_]*[?!]?)`
	goFunc           = `\bfunc\s+(?:\([^)]*\)\s*)?([a-zA-Z_][a-zA-Z0-9_]*)\s*[\[(]`
	rustFn           = `\bfn\s+([a-zA-Z_][a-zA-Z0-9_]*)`
	swiftFunc        = `\bfunc\s+([a-zA-Z_][a-zA-Z0-9_]*)`
	kotlinFun        = `\bfun\s+(?:<[^>]*>\s*)?([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`
	scalaDef         = `\bdef\s+([a-zA-Z_][a-zA-Z0-9_]*)`
	genericLineStart = lineStartCall
)

// 调试输出模式。
const (
	jsConsole       = `\bconsole\.(?:log|warn|error|info|debug)\b`
	pythonPrint     = `\bprint\s*\(`
	goPrint         = `\b(?:fmt|log)\.(?:Print|Println|Printf)\b`
	javaPrint       = `\bSystem\.(?:out|err)\.print(?:ln|f)?\b`
	cPrint          = `\b(?:printf|fprintf|puts)\s*\(|\bstd::(?:cout|cerr)\b`
	csharpPrint     = `\bConsole\.Write(?:Line)?\b`
	phpPrint        = `\b(?:echo|print_r|var_dump)\b`
	rubyPrint       = `(?m)^\s*(?:puts|p|pp|print)\b`
	rustPrint       = `\b(?:println|eprintln|print|dbg)!`
	kotlinPrint     = `\bprintln\s*\(`
	genericDiagnose = jsConsole + `|` + pythonPrint + `|` + goPrint + `|` + javaPrint
)

// decisionSpec 是决策点模式在编译前的描述。
type decisionSpec struct {
	name    string
	pattern string
}

// braceDecisions 用于花括号语言，采用整词匹配，不要求条件带括号，
// 因此 Go、Rust 这类 if 后不写括号的语言同样适用。
var braceDecisions = []decisionSpec{
	{name: "if", pattern: `\bif\b`},
	{name: "else if", pattern: `\belse\s+if\b`},
	{name: "else", pattern: `\belse\b`},
	{name: "for", pattern: `\bfor\b`},
	{name: "while", pattern: `\bwhile\b`},
	{name: "switch", pattern: `\bswitch\b`},
	{name: "case", pattern: `\bcase\b`},
	{name: "catch", pattern: `\bcatch\b`},
	{name: "&&", pattern: `&&`},
	{name: "||", pattern: `\|\|`},
	{name: "?", pattern: `\?.*:`},
}

var indentationDecisions = []decisionSpec{
	{name: "if", pattern: `\bif\s+.*:`},
	{name: "elif", pattern: `\belif\s+.*:`},
	{name: "for", pattern: `\bfor\s+.*:`},
	{name: "while", pattern: `\bwhile\s+.*:`},
	{name: "try", pattern: `\btry\s*:`},
	{name: "except", pattern: `\bexcept.*:`},
	{name: "and", pattern: `\band\b`},
	{name: "or", pattern: `\bor\b`},
}

var keywordDecisions = []decisionSpec{
	{name: "if", pattern: `\bif\b`},
	{name: "elsif", pattern: `\belsif\b`},
	{name: "unless", pattern: `\bunless\b`},
	{name: "while", pattern: `\bwhile\b`},
	{name: "until", pattern: `\buntil\b`},
	{name: "for", pattern: `\bfor\b`},
	{name: "case", pattern: `\bcase\b`},
	{name: "when", pattern: `\bwhen\b`},
	{name: "rescue", pattern: `\brescue\b`},
	{name: "&&", pattern: `&&`},
	{name: "||", pattern: `\|\|`},
}

var genericDecisions = []decisionSpec{
	{name: "if", pattern: `\bif\b`},
	{name: "for", pattern: `\bfor\b`},
	{name: "while", pattern: `\bwhile\b`},
	{name: "switch", pattern: `\bswitch\b`},
	{name: "case", pattern: `\bcase\b`},
}

// 行级状态机使用的语法描述。
var (
	cStyleSyntax = Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:        `"'`,
	}
	backtickSyntax = Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:        `"'`,
		RawQuotes:     "`",
	}
	nestedCSyntax = Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		NestedBlocks:  true,
		Quotes:        `"'`,
	}
	pythonSyntax = Syntax{
		LineComments: []string{"#"},
		BlockComments: []BlockDelimiter{
			{Open: `"""`, Close: `"""`},
			{Open: `'''`, Close: `'''`},
		},
		Quotes: `"'`,
	}
	rubySyntax = Syntax{
		LineComments:  []string{"#"},
		BlockComments: []BlockDelimiter{{Open: "=begin", Close: "=end"}},
		Quotes:        `"'`,
	}
	phpSyntax = Syntax{
		LineComments:  []string{"//", "#"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:        `"'`,
	}
	genericSyntax = Syntax{
		LineComments:  []string{"//", "#"},
		BlockComments: []BlockDelimiter{{Open: "/*", Close: "*/"}},
		Quotes:        `"'`,
		RawQuotes:     "`",
	}
)

// languageSpec 是单个语言在编译前的完整描述。
type languageSpec struct {
	language    Language
	family      Family
	extensions  []string
	singleLine  string
	multiLine   string
	functions   []string
	decisions   []decisionSpec
	diagnostics string
	keywords    []string
	syntax      Syntax
}

// builtinLanguages 是内置语言表。顺序即 Registry.Languages 之前的注册顺序。
var builtinLanguages = []languageSpec{
	{
		language:    JavaScript,
		family:      FamilyBrace,
		extensions:  []string{"js", "jsx", "mjs", "cjs"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{lineStartCall, jsFunctionDecl, jsArrowAssign},
		decisions:   braceDecisions,
		diagnostics: jsConsole,
		keywords:    []string{"function", "require"},
		syntax:      backtickSyntax,
	},
	{
		language:    TypeScript,
		family:      FamilyBrace,
		extensions:  []string{"ts", "tsx"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{lineStartCall, jsFunctionDecl, jsArrowAssign},
		decisions:   braceDecisions,
		diagnostics: jsConsole,
		keywords:    []string{"function", "require"},
		syntax:      backtickSyntax,
	},
	{
		language:    Python,
		family:      FamilyIndentation,
		extensions:  []string{"py"},
		singleLine:  hashLineComment,
		multiLine:   pythonDocstring,
		functions:   []string{pythonDef, pythonAsyncDef},
		decisions:   indentationDecisions,
		diagnostics: pythonPrint,
		keywords:    []string{"elif", "with", "print"},
		syntax:      pythonSyntax,
	},
	{
		language:    Java,
		family:      FamilyBrace,
		extensions:  []string{"java"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{javaMethod},
		decisions:   braceDecisions,
		diagnostics: javaPrint,
		keywords:    []string{"synchronized", "new"},
		syntax:      cStyleSyntax,
	},
	{
		language:    C,
		family:      FamilyBrace,
		extensions:  []string{"c", "h"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{cFunction},
		decisions:   braceDecisions,
		diagnostics: cPrint,
		keywords:    []string{"sizeof"},
		syntax:      cStyleSyntax,
	},
	{
		language:    CPP,
		family:      FamilyBrace,
		extensions:  []string{"cpp", "cc", "cxx", "hpp"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{cFunction},
		decisions:   braceDecisions,
		diagnostics: cPrint,
		keywords:    []string{"sizeof"},
		syntax:      cStyleSyntax,
	},
	{
		language:    CSharp,
		family:      FamilyBrace,
		extensions:  []string{"cs"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{csharpMethod},
		decisions:   braceDecisions,
		diagnostics: csharpPrint,
		keywords:    []string{"foreach", "using", "lock"},
		syntax:      cStyleSyntax,
	},
	{
		language:    PHP,
		family:      FamilyBrace,
		extensions:  []string{"php"},
		singleLine:  slashOrHashLine,
		multiLine:   cBlockComment,
		functions:   []string{phpFunction},
		decisions:   braceDecisions,
		diagnostics: phpPrint,
		syntax:      phpSyntax,
	},
	{
		language:    Ruby,
		family:      FamilyKeyword,
		extensions:  []string{"rb"},
		singleLine:  hashLineComment,
		multiLine:   rubyBlockComment,
		functions:   []string{rubyDef},
		decisions:   keywordDecisions,
		diagnostics: rubyPrint,
		syntax:      rubySyntax,
	},
	{
		language:    Go,
		family:      FamilyBrace,
		extensions:  []string{"go"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{goFunc},
		decisions:   braceDecisions,
		diagnostics: goPrint,
		syntax:      backtickSyntax,
	},
	{
		language:    Rust,
		family:      FamilyBrace,
		extensions:  []string{"rs"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{rustFn},
		decisions:   braceDecisions,
		diagnostics: rustPrint,
		syntax:      nestedCSyntax,
	},
	{
		language:    Swift,
		family:      FamilyBrace,
		extensions:  []string{"swift"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{swiftFunc},
		decisions:   braceDecisions,
		diagnostics: pythonPrint,
		syntax:      nestedCSyntax,
	},
	{
		language:    Kotlin,
		family:      FamilyBrace,
		extensions:  []string{"kt", "kts"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{kotlinFun},
		decisions:   braceDecisions,
		diagnostics: kotlinPrint,
		keywords:    []string{"when"},
		syntax:      nestedCSyntax,
	},
	{
		language:    Scala,
		family:      FamilyBrace,
		extensions:  []string{"scala"},
		singleLine:  slashLineComment,
		multiLine:   cBlockComment,
		functions:   []string{scalaDef},
		decisions:   braceDecisions,
		diagnostics: kotlinPrint,
		syntax:      nestedCSyntax,
	},
}

// genericLanguage 是未知后缀使用的兜底语言。
var genericLanguage = languageSpec{
	language:    Generic,
	family:      FamilyGeneric,
	singleLine:  slashOrHashLine,
	multiLine:   cBlockComment,
	functions:   []string{genericLineStart},
	decisions:   genericDecisions,
	diagnostics: genericDiagnose,
	syntax:      genericSyntax,
}

// compile 把语言描述编译为不可变的 PatternSet。
// 模式全部是包内常量，编译失败属于编程错误，因此直接 panic。
func (s languageSpec) compile() *PatternSet {
	set := &PatternSet{
		language:    s.language,
		family:      s.family,
		extensions:  append([]string(nil), s.extensions...),
		singleLine:  regexp.MustCompile(s.singleLine),
		multiLine:   regexp.MustCompile(s.multiLine),
		functions:   make([]*regexp.Regexp, 0, len(s.functions)),
		decisions:   make([]DecisionPattern, 0, len(s.decisions)),
		diagnostics: regexp.MustCompile(s.diagnostics),
		keywords:    make(map[string]struct{}, len(controlKeywords)+len(s.keywords)),
		syntax:      s.syntax,
	}

	for _, pattern := range s.functions {
		set.functions = append(set.functions, regexp.MustCompile(pattern))
	}
	for _, decision := range s.decisions {
		set.decisions = append(set.decisions, DecisionPattern{
			Name:    decision.name,
			Pattern: regexp.MustCompile(decision.pattern),
		})
	}
	for _, keyword := range controlKeywords {
		set.keywords[keyword] = struct{}{}
	}
	for _, keyword := range s.keywords {
		set.keywords[keyword] = struct{}{}
	}

	return set
}
