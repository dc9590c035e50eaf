// Package favorites содержит модель экрана избранных треков для TUI
package favorites

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).PaddingLeft(4)
)

// TrackChosenMsg отправляется при выборе трека для воспроизведения
type TrackChosenMsg struct {
	Track api.Track
}

// GoBackMsg отправляется для возврата к каталогу
type GoBackMsg struct{}

// LoadedMsg несет перечитанный список избранного
type LoadedMsg struct {
	Entries []api.FavoriteEntry
	Err     error
}

// favoriteItem реализует интерфейс list.Item для записи избранного
type favoriteItem struct {
	entry api.FavoriteEntry
}

func (i favoriteItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.entry.Track.Artist, i.entry.Track.Title)
}

type favoriteItemDelegate struct{}

func (d favoriteItemDelegate) Height() int                             { return 1 }
func (d favoriteItemDelegate) Spacing() int                            { return 0 }
func (d favoriteItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d favoriteItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(favoriteItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("♥ %-20s %-40s %s",
		utils.TruncateString(i.entry.Track.Artist, 20),
		utils.TruncateString(i.entry.Track.Title, 40),
		utils.FormatTime(i.entry.Track.Duration))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана избранного
type Model struct {
	list    list.Model
	client  *api.Client
	loadErr string
}

// NewModel создает новую модель экрана избранного
func NewModel(client *api.Client) *Model {
	l := list.New(nil, favoriteItemDelegate{}, 0, 0)
	l.Title = "Избранное"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:   l,
		client: client,
	}
}

// Init инициализирует модель и запускает загрузку избранного
func (m *Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload возвращает команду перечитывания списка избранного с сервера
func (m *Model) Reload() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.client.ListFavorites(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.loadErr = "Не удалось загрузить избранное. Попробуйте позже."
			return m, nil
		}
		m.loadErr = ""
		items := make([]list.Item, len(msg.Entries))
		for i, entry := range msg.Entries {
			items[i] = favoriteItem{entry: entry}
		}
		m.list.SetItems(items)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case "enter":
			if item, ok := m.list.SelectedItem().(favoriteItem); ok {
				return m, func() tea.Msg {
					return TrackChosenMsg{Track: item.entry.Track}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	view := m.list.View()
	if m.loadErr != "" {
		view += "\n" + errorStyle.Render(m.loadErr)
	}
	extraHelp := helpStyle.Render("Enter: воспроизвести • q/esc: назад к каталогу")
	return view + "\n" + extraHelp
}
