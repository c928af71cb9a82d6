package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/daytask/internal/store"
)

// lineInput is a single-line prompt that edits a value until enter or esc.
type lineInput struct {
	input    textinput.Model
	active   bool
	validate func(string) error
	err      string
}

func newLineInput(prompt, placeholder string, validate func(string) error) lineInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return lineInput{input: ti, validate: validate}
}

func (l *lineInput) focus(value string) tea.Cmd {
	l.active = true
	l.err = ""
	l.input.SetValue(value)
	l.input.CursorEnd()
	return l.input.Focus()
}

func (l *lineInput) blur() {
	l.active = false
	l.input.Blur()
}

// update returns submitted=true with the value when enter is pressed on a
// valid value. esc cancels without submitting.
func (l lineInput) update(msg tea.Msg) (lineInput, tea.Cmd, string, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			v := l.input.Value()
			if l.validate != nil {
				if err := l.validate(v); err != nil {
					l.err = err.Error()
					return l, nil, "", false
				}
			}
			l.blur()
			return l, nil, v, true
		case key.Matches(msg, keys.Back):
			l.blur()
			return l, nil, "", false
		}
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd, "", false
}

func (l lineInput) view() string {
	v := l.input.View()
	if l.err != "" {
		v += "  " + errStyle.Render(l.err)
	}
	return v
}

// validDateOrEmpty accepts YYYY-MM-DD or an empty string.
func validDateOrEmpty(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.Parse(store.DateLayout, s)
	if err != nil {
		return errInvalidDate
	}
	return nil
}
