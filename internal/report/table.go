package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"codemetrics/internal/languages"
	"codemetrics/internal/model"
)

// 得分着色阈值。
const (
	scoreThresholdHigh   = 80
	scoreThresholdMedium = 50
)

// palette 负责按得分与级别着色，NoColor 时输出原文。
type palette struct {
	good     *color.Color
	medium   *color.Color
	bad      *color.Color
	header   *color.Color
	critical *color.Color
	failure  *color.Color
	warning  *color.Color
}

func newPalette(options Options) palette {
	p := palette{
		good:     color.New(color.FgGreen),
		medium:   color.New(color.FgYellow),
		bad:      color.New(color.FgRed),
		header:   color.New(color.Bold),
		critical: color.New(color.FgRed, color.Bold),
		failure:  color.New(color.FgRed),
		warning:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.good, p.medium, p.bad, p.header, p.critical, p.failure, p.warning} {
		if options.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

func (p palette) score(score int) string {
	text := fmt.Sprintf("%d", score)
	switch {
	case score >= scoreThresholdHigh:
		return p.good.Sprint(text)
	case score >= scoreThresholdMedium:
		return p.medium.Sprint(text)
	default:
		return p.bad.Sprint(text)
	}
}

func (p palette) tier(tier model.Tier) string {
	switch tier {
	case model.TierCritical:
		return p.critical.Sprint(strings.ToUpper(string(tier)))
	case model.TierError:
		return p.failure.Sprint(strings.ToUpper(string(tier)))
	default:
		return p.warning.Sprint(strings.ToUpper(string(tier)))
	}
}

// newTable 创建统一风格的表格。
func newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.SetTitle(title)
	return tw
}

func writeSection(writer io.Writer, tw table.Writer) error {
	if _, err := io.WriteString(writer, tw.Render()+"\n\n"); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// PrintTable 使用表格展示扫描结果：文件明细、项目汇总、语言分布与错误列表。
func PrintTable(writer io.Writer, result model.ScanResult, options Options) error {
	colors := newPalette(options)

	if _, err := fmt.Fprintf(writer, "%s %s\n\n", colors.header.Sprint("SCANNED PATH"), result.ScannedPath); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	files := newTable("Files")
	files.AppendHeader(table.Row{"FILE", "LANGUAGE", "LINES", "CODE", "COMMENTS", "COMPLEXITY", "FUNCTIONS", "ISSUES", "SCORE"})
	for _, item := range result.Files {
		files.AppendRow(table.Row{
			item.FileName,
			item.Language,
			item.Lines.Total,
			item.Lines.Code,
			item.Comments.Total,
			item.Complexity.Total,
			item.Functions.Count,
			item.CodeQuality.Summary.Total,
			colors.score(item.CodeQuality.Score),
		})
	}
	if err := writeSection(writer, files); err != nil {
		return err
	}

	summary := newTable("Summary")
	summary.AppendRows([]table.Row{
		{"Total files", humanize.Comma(int64(result.Summary.TotalFiles))},
		{"Total lines", humanize.Comma(int64(result.Summary.TotalLines))},
		{"Code lines", humanize.Comma(int64(result.Summary.TotalCodeLines))},
		{"Functions", humanize.Comma(int64(result.Summary.TotalFunctions))},
		{"Avg complexity", result.Summary.AvgComplexity},
		{"Avg quality score", colors.score(result.Summary.AvgQualityScore)},
	})
	if err := writeSection(writer, summary); err != nil {
		return err
	}

	if len(result.Summary.LanguageDistribution) > 0 {
		distribution := newTable("Languages")
		distribution.AppendHeader(table.Row{"LANGUAGE", "FILES", "SHARE"})
		for _, name := range sortedKeys(result.Summary.LanguageDistribution) {
			count := result.Summary.LanguageDistribution[name]
			share := float64(count) / float64(max(result.Summary.TotalFiles, 1)) * 100
			distribution.AppendRow(table.Row{name, count, humanize.FtoaWithDigits(share, 1) + "%"})
		}
		if err := writeSection(writer, distribution); err != nil {
			return err
		}
	}

	if len(result.Errors) > 0 {
		errorsTable := newTable("Errors")
		errorsTable.AppendHeader(table.Row{"ERROR FILE", "MESSAGE"})
		for _, item := range result.Errors {
			errorsTable.AppendRow(table.Row{item.Path, colors.failure.Sprint(item.Error)})
		}
		if err := writeSection(writer, errorsTable); err != nil {
			return err
		}
	}

	return nil
}

// PrintFileTable 展示单文件分析结果与全部质量问题。
func PrintFileTable(writer io.Writer, result model.FileAnalysisResult, options Options) error {
	colors := newPalette(options)

	overview := newTable(result.FileName)
	overview.AppendRows([]table.Row{
		{"Language", result.Language},
		{"Total lines", result.Lines.Total},
		{"Empty lines", result.Lines.Empty},
		{"Code lines", result.Lines.Code},
		{"Comment-only lines", result.Lines.CommentOnly},
		{"Comments (single/multi)", fmt.Sprintf("%d (%d/%d)",
			result.Comments.Total, result.Comments.SingleLine, result.Comments.MultiLine)},
		{"Complexity", result.Complexity.Total},
		{"Functions", result.Functions.Count},
		{"Quality score", colors.score(result.CodeQuality.Score)},
	})
	if err := writeSection(writer, overview); err != nil {
		return err
	}

	if len(result.Complexity.Breakdown) > 0 {
		breakdown := newTable("Complexity breakdown")
		breakdown.AppendHeader(table.Row{"PATTERN", "MATCHES"})
		for _, name := range sortedKeys(result.Complexity.Breakdown) {
			breakdown.AppendRow(table.Row{name, result.Complexity.Breakdown[name]})
		}
		if err := writeSection(writer, breakdown); err != nil {
			return err
		}
	}

	if len(result.Functions.Names) > 0 {
		functions := newTable("Functions")
		functions.AppendHeader(table.Row{"#", "NAME"})
		for index, name := range result.Functions.Names {
			functions.AppendRow(table.Row{index + 1, name})
		}
		if err := writeSection(writer, functions); err != nil {
			return err
		}
	}

	if issues := result.CodeQuality.Issues(); len(issues) > 0 {
		issuesTable := newTable("Quality issues")
		issuesTable.AppendHeader(table.Row{"TIER", "MESSAGE"})
		for _, issue := range issues {
			issuesTable.AppendRow(table.Row{colors.tier(issue.Tier), issue.Message})
		}
		if err := writeSection(writer, issuesTable); err != nil {
			return err
		}
	}

	return nil
}

// PrintLanguages 展示已支持语言、所属家族与文件后缀。
func PrintLanguages(writer io.Writer, descriptors []languages.LanguageDescriptor) error {
	tw := newTable("")
	tw.AppendHeader(table.Row{"LANGUAGE", "FAMILY", "EXTENSIONS"})
	for _, item := range descriptors {
		tw.AppendRow(table.Row{item.Name, item.Family, strings.Join(item.Extensions, ", ")})
	}
	return writeSection(writer, tw)
}

func sortedKeys(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
