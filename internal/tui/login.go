package tui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daytask/internal/store"
)

type loginModel struct {
	session *store.Session
	width   int
	height  int

	form *huh.Form
	err  string

	username *string
	password *string
}

func newLoginModel(s *store.Session) loginModel {
	user, pass := "", ""
	m := loginModel{session: s, username: &user, password: &pass}
	m.form = m.build()
	return m
}

func (m *loginModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m loginModel) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Placeholder("Enter username").Value(m.username),
			huh.NewInput().Title("Password").Placeholder("Enter password").
				EchoMode(huh.EchoModePassword).Value(m.password),
		),
	).WithShowHelp(false)
}

// reset clears the form. The username survives a failed attempt.
func (m loginModel) reset(keepUser bool) (loginModel, tea.Cmd) {
	if !keepUser {
		*m.username = ""
	}
	*m.password = ""
	m.form = m.build()
	return m, m.form.Init()
}

func (m loginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	user := *m.username
	if strings.TrimSpace(user) == "" || strings.TrimSpace(*m.password) == "" {
		m.err = "Please enter both username and password"
		return m.reset(true)
	}
	if err := m.session.Login(user, *m.password); err != nil {
		log.Printf("login failed: %v", err)
		m.err = "Invalid username or password"
		return m.reset(true)
	}
	m.err = ""
	m, cmd := m.reset(false)
	return m, tea.Batch(cmd, func() tea.Msg { return loggedInMsg{user: user} })
}

func (m loginModel) view() string {
	title := brandStyle.Render("Daily Task Master")
	subtitle := taglineStyle.Render("Organize your day, achieve your goals")

	parts := []string{title, subtitle, ""}
	if m.err != "" {
		parts = append(parts, errStyle.Render(m.err), "")
	}
	parts = append(parts, m.form.View())

	box := focusBoxStyle.Width(min(60, max(30, m.width-4))).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(m.width, max(m.height-4, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}
