package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	var genre string
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks from the catalog",
		Long:  `Display tracks from the service catalog, optionally filtered by genre or search query.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks(ctx, genre, search)
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "All", "filter by genre")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search by title or artist")

	return cmd
}

func (app *Application) listTracks(ctx context.Context, genre, search string) {
	tracks, err := app.Client.ListTracks(ctx, genre, search)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить каталог. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки каталога", "error", err)
		return
	}

	if len(tracks) == 0 {
		fmt.Println("📚 Треки не найдены.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(tracks))
	printTrackTable(tracks)
	fmt.Println()
	fmt.Println("💡 Используйте 'tuner play [ID]' для воспроизведения трека")
}

// printTrackTable выводит таблицу треков
func printTrackTable(tracks []api.Track) {
	fmt.Printf("%-4s %-24s %-40s %-10s %s\n",
		"ID", "Исполнитель", "Название", "Жанр", "Длительность")
	fmt.Println(strings.Repeat("-", 90))

	for _, track := range tracks {
		fmt.Printf("%-4d %-24s %-40s %-10s %s\n",
			track.ID,
			utils.TruncateString(track.Artist, 22),
			utils.TruncateString(track.Title, 38),
			utils.TruncateString(track.Genre, 10),
			utils.FormatTime(track.Duration))
	}
}

// createFavoritesCommand создает команду favorites
func (app *Application) createFavoritesCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite tracks",
		Run: func(_ *cobra.Command, _ []string) {
			app.listFavorites(ctx)
		},
	}
}

func (app *Application) listFavorites(ctx context.Context) {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Войдите, чтобы посмотреть избранное: 'tuner login'.")
		return
	}

	entries, err := app.Client.ListFavorites(ctx)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить избранное. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки избранного", "error", err)
		return
	}

	if len(entries) == 0 {
		fmt.Println("♥ Избранное пусто. Добавьте треки командой 'tuner fav [ID]'.")
		return
	}

	fmt.Printf("♥ Избранных треков: %d\n\n", len(entries))
	tracks := make([]api.Track, len(entries))
	for i, entry := range entries {
		tracks[i] = entry.Track
	}
	printTrackTable(tracks)
}

// createDislikesCommand создает команду dislikes
func (app *Application) createDislikesCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "dislikes",
		Short: "List disliked tracks",
		Run: func(_ *cobra.Command, _ []string) {
			app.listDislikes(ctx)
		},
	}
}

func (app *Application) listDislikes(ctx context.Context) {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Войдите, чтобы посмотреть дизлайки: 'tuner login'.")
		return
	}

	entries, err := app.Client.ListDislikes(ctx)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить дизлайки. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки дизлайков", "error", err)
		return
	}

	if len(entries) == 0 {
		fmt.Println("✖ Список дизлайков пуст.")
		return
	}

	fmt.Printf("✖ Дизлайкнутых треков: %d\n\n", len(entries))
	tracks := make([]api.Track, len(entries))
	for i, entry := range entries {
		tracks[i] = entry.Track
	}
	printTrackTable(tracks)
}
