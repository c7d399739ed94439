package model

// Tier 表示质量问题的严重级别。
type Tier string

const (
	TierCritical Tier = "critical"
	TierError    Tier = "error"
	TierWarning  Tier = "warning"
)

// 各级别的扣分权重。
const (
	CriticalWeight = 25
	ErrorWeight    = 10
	WarningWeight  = 2
	MaxScore       = 100
)

// Weight 返回该级别对应的扣分值，未知级别不扣分。
func (t Tier) Weight() int {
	switch t {
	case TierCritical:
		return CriticalWeight
	case TierError:
		return ErrorWeight
	case TierWarning:
		return WarningWeight
	default:
		return 0
	}
}

// QualityIssue 是带级别的单条问题描述。
type QualityIssue struct {
	Tier    Tier   `json:"tier" yaml:"tier"`
	Message string `json:"message" yaml:"message"`
}

// QualitySummary 统计各级别问题数量。
type QualitySummary struct {
	Critical int `json:"critical" yaml:"critical"`
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Total    int `json:"total" yaml:"total"`
}

// QualityDetails 按级别保存问题消息。
type QualityDetails struct {
	Critical []string `json:"critical" yaml:"critical"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// QualityReport 是质量启发式的最终输出。
type QualityReport struct {
	Summary QualitySummary `json:"summary" yaml:"summary"`
	Details QualityDetails `json:"details" yaml:"details"`
	Score   int            `json:"score" yaml:"score"`
}

// NewQualityReport 根据各级别问题列表组装报告并计算得分。
// 传入 nil 时会被规范化为空切片，保证 JSON 输出稳定。
func NewQualityReport(critical, errors, warnings []string) QualityReport {
	critical = nonNil(critical)
	errors = nonNil(errors)
	warnings = nonNil(warnings)

	return QualityReport{
		Summary: QualitySummary{
			Critical: len(critical),
			Errors:   len(errors),
			Warnings: len(warnings),
			Total:    len(critical) + len(errors) + len(warnings),
		},
		Details: QualityDetails{
			Critical: critical,
			Errors:   errors,
			Warnings: warnings,
		},
		Score: Score(len(critical), len(errors), len(warnings)),
	}
}

// Score 计算 clamp(100 - 25*critical - 10*errors - 2*warnings, 0, 100)。
func Score(critical, errors, warnings int) int {
	score := MaxScore -
		critical*CriticalWeight -
		errors*ErrorWeight -
		warnings*WarningWeight

	return min(max(score, 0), MaxScore)
}

// Issues 把报告展开为带级别的问题列表，顺序为 critical、error、warning。
func (r QualityReport) Issues() []QualityIssue {
	issues := make([]QualityIssue, 0, r.Summary.Total)
	for _, message := range r.Details.Critical {
		issues = append(issues, QualityIssue{Tier: TierCritical, Message: message})
	}
	for _, message := range r.Details.Errors {
		issues = append(issues, QualityIssue{Tier: TierError, Message: message})
	}
	for _, message := range r.Details.Warnings {
		issues = append(issues, QualityIssue{Tier: TierWarning, Message: message})
	}
	return issues
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
