// Package prompt asks the user for a bounded integer on the terminal.
package prompt

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// ErrCanceled is returned by Ask when the user presses Esc or Ctrl+C.
var ErrCanceled = errors.New("prompt canceled")

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds is the accepted square footage range.
var DefaultBounds = Bounds{Min: 100, Max: 200000}

const source = "prompt"

// ParseBounded parses s as an integer within b.
func ParseBounded(s string, b Bounds) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewInputError(source, 0, s, "please enter an integer")
	}
	if v < b.Min || v > b.Max {
		return 0, errors.NewInputError(source, 0, s,
			fmt.Sprintf("square footage must be between %s and %s", groupThousands(b.Min), groupThousands(b.Max)))
	}
	return v, nil
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#58a6ff"))
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6edf3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
)

// Model is the bubbletea model behind Ask. It keeps prompting until the
// input parses within its bounds or the user cancels.
type Model struct {
	bounds   Bounds
	input    string
	errMsg   string
	value    int
	done     bool
	canceled bool
}

// New returns a prompt model for b.
func New(b Bounds) Model {
	return Model{bounds: b}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.canceled = true
		return m, tea.Quit

	case "enter":
		v, err := ParseBounded(m.input, m.bounds)
		if err != nil {
			var inErr *errors.InputError
			if errors.As(err, &inErr) {
				m.errMsg = inErr.Reason
			} else {
				m.errMsg = err.Error()
			}
			m.input = ""
			return m, nil
		}
		m.value = v
		m.done = true
		m.errMsg = ""
		return m, tea.Quit

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) View() string {
	if m.done || m.canceled {
		return ""
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf(
		"Enter the square footage of the home (an integer between %s and %s): ",
		groupThousands(m.bounds.Min), groupThousands(m.bounds.Max))))
	b.WriteString(inputStyle.Render(m.input))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Invalid input: " + m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to submit • esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value reports the accepted integer and whether one was accepted.
func (m Model) Value() (int, bool) {
	return m.value, m.done
}

// Canceled reports whether the user aborted the prompt.
func (m Model) Canceled() bool {
	return m.canceled
}

// Ask runs the prompt on in/out until a valid integer is entered.
func Ask(ctx context.Context, in io.Reader, out io.Writer, b Bounds) (int, error) {
	p := tea.NewProgram(New(b),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return 0, errors.Wrap(err, "run prompt")
	}

	m, ok := final.(Model)
	if !ok {
		return 0, errors.Newf("unexpected prompt model %T", final)
	}
	if m.Canceled() {
		return 0, ErrCanceled
	}
	v, ok := m.Value()
	if !ok {
		return 0, ErrCanceled
	}
	return v, nil
}
