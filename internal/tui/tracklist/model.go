// Package tracklist содержит модель экрана каталога треков для TUI
package tracklist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).PaddingLeft(4)
)

// Жанры каталога в порядке переключения клавишей "g"
var genres = []string{"All", "Ambient", "Lo-Fi", "Hip-Hop", "Pop", "Indie"}

// TrackChosenMsg отправляется при выборе трека для воспроизведения
type TrackChosenMsg struct {
	Track api.Track
}

// OpenFavoritesMsg отправляется для перехода к списку избранного
type OpenFavoritesMsg struct{}

// CatalogReloadedMsg отправляется после перезагрузки каталога
type CatalogReloadedMsg struct{}

// trackItem реализует интерфейс list.Item для трека каталога
type trackItem struct {
	track api.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Artist, i.track.Title)
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct{}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Отметка избранного видна только авторизованной сессии
	marker := " "
	if i.track.Favorited() {
		marker = "♥"
	}

	str := fmt.Sprintf("%s %-20s %-40s %-10s %s",
		marker,
		utils.TruncateString(i.track.Artist, 20),
		utils.TruncateString(i.track.Title, 40),
		utils.TruncateString(i.track.Genre, 10),
		utils.FormatTime(i.track.Duration))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана каталога треков
type Model struct {
	list     list.Model
	playback *playback.Manager
	genreIdx int
	quitting bool
}

// NewModel создает новую модель каталога
func NewModel(pb *playback.Manager) *Model {
	l := list.New(nil, trackItemDelegate{}, 0, 0)
	l.Title = "Каталог"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := &Model{
		list:     l,
		playback: pb,
	}
	m.Refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Refresh перечитывает каталог из менеджера воспроизведения
func (m *Model) Refresh() {
	tracks := m.playback.Tracks()
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Каталог · %s", m.playback.Genre())
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case CatalogReloadedMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		// Во время фильтрации клавиши уходят в поле ввода
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(trackItem); ok {
				return m, func() tea.Msg {
					return TrackChosenMsg{Track: item.track}
				}
			}

		case "g":
			// Переключаем фильтр жанра и перечитываем каталог
			m.genreIdx = (m.genreIdx + 1) % len(genres)
			genre := genres[m.genreIdx]
			return m, func() tea.Msg {
				m.playback.LoadCatalog(context.Background(), genre)
				return CatalogReloadedMsg{}
			}

		case "f":
			return m, func() tea.Msg {
				return OpenFavoritesMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	view := m.list.View()
	if lastError := m.playback.LastError(); lastError != "" {
		view += "\n" + errorStyle.Render(lastError)
	}
	extraHelp := helpStyle.Render("Enter: воспроизвести • g: жанр • f: избранное • /: поиск • q: выход")
	return view + "\n" + extraHelp
}
