package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/metadata"
	"github.com/hazadus/go-tuner/internal/utils"
)

// requireAdmin проверяет, что текущая сессия принадлежит администратору
func (app *Application) requireAdmin() bool {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Войдите, чтобы выполнять команды администратора: 'tuner login'.")
		return false
	}
	if !app.Session.User().IsAdmin() {
		fmt.Println("🔒 Команда доступна только администраторам.")
		return false
	}
	return true
}

// createUsersCommand создает команду users с подкомандами администратора
func (app *Application) createUsersCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List service users (admin only)",
		Run: func(_ *cobra.Command, _ []string) {
			app.listUsers(ctx)
		},
	}

	cmd.AddCommand(app.createUserDeleteCommand(ctx))

	return cmd
}

func (app *Application) listUsers(ctx context.Context) {
	if !app.requireAdmin() {
		return
	}

	users, err := app.Client.ListUsers(ctx)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить пользователей. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки пользователей", "error", err)
		return
	}

	fmt.Printf("👥 Пользователей: %d\n\n", len(users))
	fmt.Printf("%-4s %-20s %-30s %-10s %s\n", "ID", "Логин", "Email", "Роль", "Активен")
	fmt.Println(strings.Repeat("-", 80))
	for _, user := range users {
		active := "да"
		if !user.IsActive {
			active = "нет"
		}
		fmt.Printf("%-4d %-20s %-30s %-10s %s\n",
			user.ID,
			utils.TruncateString(user.Username, 18),
			utils.TruncateString(user.Email, 28),
			user.Role,
			active)
	}
}

// createUserDeleteCommand создает подкоманду delete
func (app *Application) createUserDeleteCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [userid]",
		Short: "Delete a user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID пользователя: %s", args[0])
			}
			app.deleteUser(ctx, userID)
			return nil
		},
	}
}

func (app *Application) deleteUser(ctx context.Context, userID int) {
	if !app.requireAdmin() {
		return
	}

	if err := app.Client.DeleteUser(ctx, userID); err != nil {
		fmt.Println("❌ Не удалось удалить пользователя.")
		app.Logger.Debug("ошибка удаления пользователя", "user_id", userID, "error", err)
		return
	}
	fmt.Printf("🗑️  Пользователь %d удален\n", userID)
}

// createUploadCommand создает команду upload для загрузки трека в каталог
func (app *Application) createUploadCommand(ctx context.Context) *cobra.Command {
	var title string
	var artist string
	var genre string
	var coverPath string

	cmd := &cobra.Command{
		Use:   "upload [file path]",
		Short: "Upload an mp3 file to the catalog (admin only)",
		Long:  `Upload an mp3 file to the service catalog. Title, artist and genre are read from the file tags unless overridden by flags.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.uploadTrack(ctx, args[0], title, artist, genre, coverPath)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "track title (defaults to the file tag)")
	cmd.Flags().StringVar(&artist, "artist", "", "track artist (defaults to the file tag)")
	cmd.Flags().StringVar(&genre, "genre", "", "track genre (defaults to the file tag)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "path to a cover image")

	return cmd
}

func (app *Application) uploadTrack(ctx context.Context, filePath, title, artist, genre, coverPath string) error {
	if !app.requireAdmin() {
		return nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("файл не найден: %s", filePath)
	}

	// Метаданные читаем из тегов файла, флаги имеют приоритет
	extractor := metadata.NewExtractor()
	info, err := extractor.Probe(filePath)
	if err != nil {
		return fmt.Errorf("ошибка чтения метаданных: %w", err)
	}

	if title == "" {
		title = info.Title
	}
	if artist == "" {
		artist = info.Artist
	}
	if genre == "" {
		genre = info.Genre
	}

	fmt.Printf("📤 Загружаем трек в каталог:\n")
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Исполнитель: %s\n", artist)
	fmt.Printf("   Название: %s\n", title)
	fmt.Printf("   Жанр: %s\n", genre)
	fmt.Printf("   Продолжительность: %s\n", utils.FormatTime(info.Duration))
	fmt.Println()

	track, err := app.Client.CreateTrack(ctx, api.TrackUpload{
		Title:     title,
		Artist:    artist,
		Genre:     genre,
		Duration:  info.Duration,
		CoverPath: coverPath,
		AudioPath: filePath,
	})
	if err != nil {
		fmt.Println("❌ Не удалось загрузить трек.")
		app.Logger.Debug("ошибка загрузки трека", "error", err)
		return nil
	}

	fmt.Printf("✅ Трек загружен, ID: %d\n", track.ID)
	return nil
}

// createTrackCommand создает команду track с подкомандами администратора
func (app *Application) createTrackCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage catalog tracks (admin only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [trackid]",
		Short: "Delete a track from the catalog (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.deleteTrack(ctx, trackID)
			return nil
		},
	})

	cmd.AddCommand(app.createTrackUpdateCommand(ctx))

	return cmd
}

// createTrackUpdateCommand создает подкоманду update для правки метаданных трека
func (app *Application) createTrackUpdateCommand(ctx context.Context) *cobra.Command {
	var title string
	var artist string
	var genre string

	cmd := &cobra.Command{
		Use:   "update [trackid]",
		Short: "Update track metadata (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.updateTrack(ctx, trackID, title, artist, genre)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new track title")
	cmd.Flags().StringVar(&artist, "artist", "", "new track artist")
	cmd.Flags().StringVar(&genre, "genre", "", "new track genre")

	return cmd
}

func (app *Application) updateTrack(ctx context.Context, trackID int, title, artist, genre string) {
	if !app.requireAdmin() {
		return
	}

	track, err := app.Client.GetTrack(ctx, trackID)
	if err != nil {
		fmt.Printf("❌ Трек с ID %d не найден\n", trackID)
		return
	}

	// Незаполненные флаги сохраняют прежние значения
	if title == "" {
		title = track.Title
	}
	if artist == "" {
		artist = track.Artist
	}
	if genre == "" {
		genre = track.Genre
	}

	updated, err := app.Client.UpdateTrack(ctx, trackID, api.TrackUpload{
		Title:    title,
		Artist:   artist,
		Genre:    genre,
		Duration: track.Duration,
	})
	if err != nil {
		fmt.Println("❌ Не удалось обновить трек.")
		app.Logger.Debug("ошибка обновления трека", "track_id", trackID, "error", err)
		return
	}
	fmt.Printf("✅ Трек обновлен: %s - %s\n", updated.Artist, updated.Title)
}

func (app *Application) deleteTrack(ctx context.Context, trackID int) {
	if !app.requireAdmin() {
		return
	}

	track, err := app.Client.GetTrack(ctx, trackID)
	if err != nil {
		fmt.Printf("❌ Трек с ID %d не найден\n", trackID)
		return
	}

	fmt.Printf("🗑️  Удаляем трек: %s - %s\n", track.Artist, track.Title)
	if err := app.Client.DeleteTrack(ctx, trackID); err != nil {
		fmt.Println("❌ Не удалось удалить трек.")
		app.Logger.Debug("ошибка удаления трека", "track_id", trackID, "error", err)
		return
	}
	fmt.Println("✅ Трек удален")
}
