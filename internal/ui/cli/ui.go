package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"pydoclint/internal/core/app"
	"pydoclint/internal/data/history"
	"pydoclint/internal/engine/checker"
	"pydoclint/internal/shared/util"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	file        string
	line        int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type panelMode int

const (
	panelViolations panelMode = iota
	panelCodes
)

type codeCount struct {
	code  string
	count int
}

type model struct {
	violationList list.Model
	codeList      list.Model
	mode          panelMode
	root          string
	trendReport   *history.TrendReport
	showTrend     bool

	violations []checker.Violation
	failures   []app.ParseFailure
	codes      []codeCount
	changed    []string
	convention string
	fileCount  int
	lastUpdate time.Time

	sourceJumpStatus string
}

type updateMsg struct {
	result  *app.Result
	changed []string
	trend   *history.TrendReport
}

type sourceJumpResultMsg struct {
	target string
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.violationList.SetSize(width, height)
		m.codeList.SetSize(width, height)
	case updateMsg:
		m = m.applyUpdate(msg)
	case sourceJumpResultMsg:
		if msg.err != nil {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Source jump failed: %v", msg.err))
		} else {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Opened source: %s", msg.target))
		}
	}

	var cmd tea.Cmd
	if m.mode == panelViolations {
		m.violationList, cmd = m.violationList.Update(msg)
	} else {
		m.codeList, cmd = m.codeList.Update(msg)
	}
	return m, cmd
}

func (m model) applyUpdate(msg updateMsg) model {
	if msg.trend != nil {
		m.trendReport = msg.trend
	}
	m.changed = msg.changed
	m.lastUpdate = time.Now()
	if msg.result == nil {
		return m
	}

	m.violations = msg.result.Violations
	m.failures = msg.result.Failures
	m.convention = msg.result.Convention
	m.fileCount = msg.result.FileCount()

	items := make([]list.Item, 0, len(m.violations)+len(m.failures))
	for _, v := range m.violations {
		items = append(items, item{
			title: fmt.Sprintf("%s %s:%d", v.Code, m.displayPath(v.File), v.Line),
			desc:  fmt.Sprintf("%s '%s': %s", v.NodeKind, v.NodeName, v.Message),
			file:  v.File,
			line:  v.Line,
		})
	}
	for _, f := range m.failures {
		items = append(items, item{
			title: "Unchecked " + m.displayPath(f.Path),
			desc:  f.Message,
			file:  f.Path,
			line:  1,
		})
	}
	m.violationList.SetItems(items)

	counts := msg.result.CountByCode()
	m.codes = make([]codeCount, 0, len(counts))
	for _, code := range util.SortedStringKeys(counts) {
		m.codes = append(m.codes, codeCount{code: code, count: counts[code]})
	}
	codeItems := make([]list.Item, 0, len(m.codes))
	for _, c := range m.codes {
		short := ""
		if text, ok := checker.MessageFor(c.code); ok {
			short = text.Short
		}
		codeItems = append(codeItems, item{
			title: fmt.Sprintf("%s  %d", c.code, c.count),
			desc:  short,
		})
	}
	m.codeList.SetItems(codeItems)
	return m
}

func (m model) displayPath(path string) string {
	if m.root == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	return util.RelSlash(m.root, path)
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | convention %s",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.convention))

	var summary string
	if len(m.violations) == 0 && len(m.failures) == 0 {
		summary = successStyle.Render("All docstrings clean")
	} else {
		summary = fmt.Sprintf("%s | %s",
			violationStyle.Render(fmt.Sprintf("%d violations", len(m.violations))),
			failureStyle.Render(fmt.Sprintf("%d unchecked", len(m.failures))))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Docstring Monitor"), status, summary)
	help := renderHelp(m)

	body := m.violationList.View()
	if m.mode == panelCodes {
		body = renderCodePanel(m)
	}
	if len(m.changed) > 0 {
		body += "\n\n" + renderChanged(m)
	}
	if m.showTrend {
		body += "\n\n" + renderTrendOverlay(m.trendReport)
	}
	if m.sourceJumpStatus != "" {
		body += "\n\n" + m.sourceJumpStatus
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func initialModel(root string, trendReport *history.TrendReport) model {
	violationList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	violationList.Title = "Violations"
	violationList.SetShowStatusBar(false)
	violationList.SetFilteringEnabled(true)

	codeList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	codeList.Title = "Codes"
	codeList.SetShowStatusBar(false)
	codeList.SetFilteringEnabled(true)

	return model{
		violationList: violationList,
		codeList:      codeList,
		mode:          panelViolations,
		root:          root,
		trendReport:   trendReport,
		lastUpdate:    time.Now(),
	}
}
