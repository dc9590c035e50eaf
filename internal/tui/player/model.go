// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

// Шаг перемотки стрелками
const seekStep = 5 * time.Second

// Шаг изменения громкости
const volumeStep = 0.05

// GoBackMsg отправляется для возврата к каталогу
type GoBackMsg struct{}

// TickMsg приходит по таймеру для обновления позиции воспроизведения
type TickMsg struct{}

// FlagsToggledMsg отправляется после завершения переключения
// избранного или дизлайка
type FlagsToggledMsg struct{}

// Model представляет модель экрана воспроизведения
type Model struct {
	playback    *playback.Manager
	progressBar progress.Model
	width       int
	height      int
}

// NewModel создает новую модель плеера
func NewModel(pb *playback.Manager) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		playback:    pb,
		progressBar: prog,
	}
}

// Init инициализирует модель и запускает таймер обновления позиции
func (m *Model) Init() tea.Cmd {
	return tick()
}

// tick возвращает команду таймера обновления позиции
func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case TickMsg:
		var percent float64
		if duration := m.playback.Duration(); duration > 0 {
			percent = m.playback.CurrentTime() / duration
		}
		return m, tea.Batch(
			m.progressBar.SetPercent(percent),
			tick(),
		)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// handleKey обрабатывает клавиши управления воспроизведением
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg {
			return GoBackMsg{}
		}

	case " ":
		m.playback.TogglePlayPause()
		return m, nil

	case "n":
		return m, func() tea.Msg {
			m.playback.PlayNext(context.Background())
			return nil
		}

	case "p":
		return m, func() tea.Msg {
			m.playback.PlayPrevious(context.Background())
			return nil
		}

	case "r":
		m.playback.ToggleRepeat()
		return m, nil

	case "s":
		m.playback.ToggleShuffle()
		return m, nil

	case "f":
		if track := m.playback.Current(); track != nil {
			trackID := track.ID
			return m, func() tea.Msg {
				_ = m.playback.ToggleFavorite(context.Background(), trackID)
				return FlagsToggledMsg{}
			}
		}

	case "d":
		if track := m.playback.Current(); track != nil {
			trackID := track.ID
			return m, func() tea.Msg {
				_ = m.playback.ToggleDislike(context.Background(), trackID)
				return FlagsToggledMsg{}
			}
		}

	case "+", "=":
		m.playback.SetVolume(m.playback.Volume() + volumeStep)
		return m, nil

	case "-":
		m.playback.SetVolume(m.playback.Volume() - volumeStep)
		return m, nil

	case "right":
		position := time.Duration(m.playback.CurrentTime()*float64(time.Second)) + seekStep
		m.playback.Seek(position)
		return m, nil

	case "left":
		position := time.Duration(m.playback.CurrentTime()*float64(time.Second)) - seekStep
		if position < 0 {
			position = 0
		}
		m.playback.Seek(position)
		return m, nil
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	track := m.playback.Current()
	if track == nil {
		return fmt.Sprintf(
			"%s\n\n%s",
			titleStyle.Render("🎵 Плеер"),
			controlsStyle.Render("Трек не выбран. Нажмите 'q' или 'esc' для возврата к каталогу"),
		)
	}

	title := titleStyle.Render("🎵 Воспроизведение")

	// Отметки избранного и дизлайка
	var marks string
	if track.Favorited() {
		marks += " ♥"
	}
	if track.Disliked() {
		marks += " ✖"
	}

	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n🎵 %s%s\n💿 %s",
		track.Artist,
		track.Title,
		marks,
		track.Genre,
	))

	statusIcon := "⏸️"
	statusText := "Пауза"
	if m.playback.IsPlaying() {
		statusIcon = "▶️"
		statusText = "Воспроизведение"
	}

	var modes string
	if m.playback.IsRepeat() {
		modes += " 🔁"
	}
	if m.playback.IsShuffle() {
		modes += " 🔀"
	}

	status := statusStyle.Render(fmt.Sprintf("%s %s%s · 🔊 %.0f%%",
		statusIcon, statusText, modes, m.playback.Volume()*100))

	progressView := m.progressBar.View()

	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatTime(m.playback.CurrentTime()),
		utils.FormatTime(m.playback.Duration()),
	)

	var errorLine string
	if lastError := m.playback.LastError(); lastError != "" {
		errorLine = "\n" + errorStyle.Render(lastError)
	}

	controls := controlsStyle.Render(
		"Пробел: пауза • n/p: след./пред. • f: избранное • d: дизлайк\n" +
			"r: повтор • s: перемешивание • ←/→: перемотка • +/-: громкость • q/esc: назад",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s%s\n\n%s",
		title,
		trackInfo,
		status,
		progressView,
		timeText,
		errorLine,
		controls,
	)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
