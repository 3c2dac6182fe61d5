package controller

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

func defaultConfirmKeys() confirmKeyMap {
	return confirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:  key.NewBinding(key.WithKeys("n", "N", "enter", "esc", "q", "ctrl+c"), key.WithHelp("n", "no")),
	}
}

// confirmModel is a single-question Bubble Tea model. Anything but an
// explicit yes answers no.
type confirmModel struct {
	question  string
	keys      confirmKeyMap
	answered  bool
	confirmed bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question, keys: defaultConfirmKeys()}
}

func (c confirmModel) Init() tea.Cmd {
	return nil
}

func (c confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Yes):
		c.answered = true
		c.confirmed = true

		return c, tea.Quit
	case key.Matches(keyMsg, c.keys.No):
		c.answered = true

		return c, tea.Quit
	}

	return c, nil
}

func (c confirmModel) View() string {
	if c.answered {
		answer := "no"
		if c.confirmed {
			answer = "yes"
		}

		return c.question + " " + answer + "\n"
	}

	hint := lipgloss.NewStyle().Faint(true).Render("[y/N]")

	return c.question + " " + hint + " "
}

func runConfirmPrompt(question string, in io.Reader, out io.Writer) (bool, error) {
	program := tea.NewProgram(newConfirmModel(question), tea.WithInput(in), tea.WithOutput(out))

	final, err := program.Run()
	if err != nil {
		return false, err
	}

	model, ok := final.(confirmModel)

	return ok && model.confirmed, nil
}
