// Package login содержит модель экрана входа для TUI
package login

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tuner/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
)

// LoggedInMsg отправляется после успешного входа
type LoggedInMsg struct{}

// SkippedMsg отправляется, если пользователь решил продолжить без входа
type SkippedMsg struct{}

// loginResultMsg несет результат попытки входа
type loginResultMsg struct {
	ok bool
}

// fieldType определяет поле формы входа
type fieldType int

const (
	usernameField fieldType = iota
	passwordField
	numFields
)

// Model представляет модель экрана входа
type Model struct {
	session    *session.Manager
	inputs     []textinput.Model
	focusIndex int
	submitting bool
}

// NewModel создает новую модель экрана входа
func NewModel(sess *session.Manager) *Model {
	inputs := make([]textinput.Model, numFields)

	inputs[usernameField] = textinput.New()
	inputs[usernameField].Placeholder = "Имя пользователя"
	inputs[usernameField].Focus()
	inputs[usernameField].PromptStyle = focusedStyle
	inputs[usernameField].TextStyle = focusedStyle

	inputs[passwordField] = textinput.New()
	inputs[passwordField].Placeholder = "Пароль"
	inputs[passwordField].EchoMode = textinput.EchoPassword
	inputs[passwordField].EchoCharacter = '•'

	return &Model{
		session: sess,
		inputs:  inputs,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.ok {
			return m, func() tea.Msg {
				return LoggedInMsg{}
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Каталог доступен и без входа
			return m, func() tea.Msg {
				return SkippedMsg{}
			}

		case "tab", "shift+tab", "up", "down":
			m.cycleFocus(msg.String())
			return m, nil

		case "enter":
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			username := m.inputs[usernameField].Value()
			password := m.inputs[passwordField].Value()
			return m, func() tea.Msg {
				ok := m.session.Login(context.Background(), username, password)
				return loginResultMsg{ok: ok}
			}
		}
	}

	// Передаем сообщение активному полю ввода
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// cycleFocus переключает фокус между полями формы
func (m *Model) cycleFocus(key string) {
	if key == "shift+tab" || key == "up" {
		m.focusIndex--
	} else {
		m.focusIndex++
	}
	if m.focusIndex < 0 {
		m.focusIndex = int(numFields) - 1
	}
	if m.focusIndex >= int(numFields) {
		m.focusIndex = 0
	}

	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = lipgloss.NewStyle()
			m.inputs[i].TextStyle = lipgloss.NewStyle()
		}
	}
}

// View отображает модель
func (m *Model) View() string {
	view := titleStyle.Render("🎧 Вход в Tuner") + "\n\n"
	view += labelStyle.Render("Логин:") + m.inputs[usernameField].View() + "\n"
	view += labelStyle.Render("Пароль:") + m.inputs[passwordField].View() + "\n"

	if m.submitting {
		view += helpStyle.Render("Выполняется вход...")
	} else if lastError := m.session.LastError(); lastError != "" {
		view += errorStyle.Render(lastError)
	}

	view += helpStyle.Render("Enter: войти • Tab: переключение полей • Esc: продолжить без входа")
	return view
}
