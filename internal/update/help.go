package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/habitd/internal/views"
)

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Mark     key.Binding
	Command  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous day")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		Mark:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		Command:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		PrevWeek: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous week")),
		NextWeek: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Command, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Mark, k.PrevWeek, k.NextWeek, k.Today},
		{k.Command, k.Help, k.Quit},
	}
}

const commandHelp = `## Commands

| command | effect |
|---|---|
| ` + "`add 'name' [type]`" + ` | add a habit; type is a number (counter), a single character, or omitted (yes/no) |
| ` + "`edit 1 'name'`" + ` | rename habit 1 |
| ` + "`delete 1`" + ` | remove habit 1 |

Quote names containing spaces with ' or ". Press esc to cancel.
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Keys\n\n")
	for _, group := range m.Keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("- `" + h.Key + "` " + h.Desc + "\n")
		}
	}
	b.WriteString("\n" + commandHelp)
	return views.RenderMarkdown(b.String())
}
