package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	filtering := m.violationList.FilterState() == list.Filtering || m.codeList.FilterState() == list.Filtering
	if !filtering {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.mode == panelViolations {
				m.mode = panelCodes
			} else {
				m.mode = panelViolations
			}
			return m, nil
		case "t":
			m.showTrend = !m.showTrend
			return m, nil
		case "enter", "o":
			if m.mode != panelViolations {
				return m, nil
			}
			target, ok := selectedSourceTarget(m)
			if !ok {
				m.sourceJumpStatus = statusStyle.Render("No source target available.")
				return m, nil
			}
			return m, jumpToSourceCmd(target)
		}
	} else if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.mode == panelViolations {
		m.violationList, cmd = m.violationList.Update(msg)
	} else {
		m.codeList, cmd = m.codeList.Update(msg)
	}
	return m, cmd
}

type sourceTarget struct {
	file string
	line int
}

func selectedSourceTarget(m model) (sourceTarget, bool) {
	selected, ok := m.violationList.SelectedItem().(item)
	if !ok || selected.file == "" {
		return sourceTarget{}, false
	}
	return sourceTarget{file: selected.file, line: max(selected.line, 1)}, true
}

func jumpToSourceCmd(target sourceTarget) tea.Cmd {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	args := []string{target.file}
	if strings.Contains(editor, "vim") || strings.Contains(editor, "nvim") || strings.HasSuffix(editor, "vi") ||
		strings.Contains(editor, "emacs") || strings.Contains(editor, "nano") {
		args = []string{fmt.Sprintf("+%d", target.line), target.file}
	}
	cmd := exec.Command(editor, args...)
	label := fmt.Sprintf("%s:%d", target.file, target.line)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sourceJumpResultMsg{target: label, err: err}
	})
}
