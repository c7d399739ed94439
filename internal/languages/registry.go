package languages

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name       string
	Family     Family
	Extensions []string
}

// Registry 管理语言模式表注册与后缀映射。
// 构建完成后只读，可被任意 goroutine 共享。
type Registry struct {
	sets       []*PatternSet
	setByExt   map[string]*PatternSet
	setByName  map[Language]*PatternSet
	genericSet *PatternSet
}

// NewRegistry 编译并注册所有内置语言模式表。
func NewRegistry() *Registry {
	registry := &Registry{
		sets:       make([]*PatternSet, 0, len(builtinLanguages)),
		setByExt:   make(map[string]*PatternSet),
		setByName:  make(map[Language]*PatternSet),
		genericSet: genericLanguage.compile(),
	}

	for _, spec := range builtinLanguages {
		set := spec.compile()
		registry.sets = append(registry.sets, set)
		registry.setByName[set.language] = set
		for _, ext := range set.extensions {
			registry.setByExt[strings.ToLower(ext)] = set
		}
	}
	registry.setByName[Generic] = registry.genericSet

	return registry
}

// Default 返回进程级共享的注册中心，首次调用时构建。
var Default = sync.OnceValue(NewRegistry)

// Classify 根据文件路径的最后一个后缀返回模式表。
// 没有后缀或后缀未知时返回 generic 模式表，永不失败。
func (r *Registry) Classify(path string) *PatternSet {
	if set, ok := r.setByExt[extensionOf(path)]; ok {
		return set
	}
	return r.genericSet
}

// Supports 判断路径后缀是否命中某个内置语言（generic 不算）。
func (r *Registry) Supports(path string) bool {
	_, ok := r.setByExt[extensionOf(path)]
	return ok
}

// Lookup 按语言标识查找模式表。
func (r *Registry) Lookup(language Language) (*PatternSet, bool) {
	set, ok := r.setByName[language]
	return set, ok
}

// Generic 返回兜底模式表。
func (r *Registry) Generic() *PatternSet {
	return r.genericSet
}

// Languages 返回已注册语言清单，按名称排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.sets))
	for _, set := range r.sets {
		extensions := make([]string, 0, len(set.extensions))
		for _, ext := range set.extensions {
			extensions = append(extensions, "."+ext)
		}
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       string(set.language),
			Family:     set.family,
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// extensionOf 取文件名最后一个点号之后的部分并转为小写。
func extensionOf(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
