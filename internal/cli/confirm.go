package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is the bubbletea model for a yes/no prompt.
type confirmModel struct {
	question string
	answer   bool
	decided  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer = true
			m.decided = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c", "enter":
			m.decided = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.decided {
		return ""
	}
	return StyleWarning.Render("! ") + m.question + StyleDim.Render(" [y/N] ")
}

// confirmOverwrite asks whether an existing file may be replaced. When
// stdin is not a terminal the answer is no, so scripted runs never block.
func confirmOverwrite(path string) (bool, error) {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false, nil
	}

	m := confirmModel{question: fmt.Sprintf("Overwrite %s?", path)}
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(confirmModel)
	return ok && fm.answer, nil
}
