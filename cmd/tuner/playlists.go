package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/utils"
)

// createPlaylistsCommand создает команду playlists с подкомандами
func (app *Application) createPlaylistsCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "Manage playlists",
		Long:  `List, create and delete playlists, and manage the tracks inside them.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listPlaylists(ctx)
		},
	}

	cmd.AddCommand(app.createPlaylistShowCommand(ctx))
	cmd.AddCommand(app.createPlaylistCreateCommand(ctx))
	cmd.AddCommand(app.createPlaylistDeleteCommand(ctx))
	cmd.AddCommand(app.createPlaylistAddCommand(ctx))
	cmd.AddCommand(app.createPlaylistRemoveCommand(ctx))

	return cmd
}

func (app *Application) listPlaylists(ctx context.Context) {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Войдите, чтобы работать с плейлистами: 'tuner login'.")
		return
	}

	playlists, err := app.Client.ListPlaylists(ctx)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить плейлисты. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки плейлистов", "error", err)
		return
	}

	if len(playlists) == 0 {
		fmt.Println("📂 Плейлистов нет. Создайте первый: 'tuner playlists create [name]'.")
		return
	}

	fmt.Printf("📂 Плейлистов: %d\n\n", len(playlists))
	fmt.Printf("%-4s %-30s %-40s %s\n", "ID", "Название", "Описание", "Доступ")
	fmt.Println(strings.Repeat("-", 90))
	for _, playlist := range playlists {
		access := "личный"
		if playlist.IsPublic {
			access = "публичный"
		}
		fmt.Printf("%-4d %-30s %-40s %s\n",
			playlist.ID,
			utils.TruncateString(playlist.Name, 28),
			utils.TruncateString(playlist.Description, 38),
			access)
	}
}

// createPlaylistShowCommand создает подкоманду show
func (app *Application) createPlaylistShowCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show [playlistid]",
		Short: "Show playlist tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID плейлиста: %s", args[0])
			}
			app.showPlaylist(ctx, playlistID)
			return nil
		},
	}
}

func (app *Application) showPlaylist(ctx context.Context, playlistID int) {
	playlist, err := app.Client.GetPlaylist(ctx, playlistID)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить плейлист. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки плейлиста", "playlist_id", playlistID, "error", err)
		return
	}

	fmt.Printf("📂 %s\n", playlist.Name)
	if playlist.Description != "" {
		fmt.Printf("   %s\n", playlist.Description)
	}
	fmt.Println()

	if len(playlist.Tracks) == 0 {
		fmt.Println("Плейлист пуст.")
		return
	}

	tracks := make([]api.Track, len(playlist.Tracks))
	for i, entry := range playlist.Tracks {
		tracks[i] = entry.Track
	}
	printTrackTable(tracks)
}

// createPlaylistCreateCommand создает подкоманду create
func (app *Application) createPlaylistCreateCommand(ctx context.Context) *cobra.Command {
	var description string
	var public bool

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new playlist",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			app.createPlaylist(ctx, api.PlaylistCreate{
				Name:        args[0],
				Description: description,
				IsPublic:    public,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "playlist description")
	cmd.Flags().BoolVar(&public, "public", false, "make the playlist public")

	return cmd
}

func (app *Application) createPlaylist(ctx context.Context, data api.PlaylistCreate) {
	playlist, err := app.Client.CreatePlaylist(ctx, data)
	if err != nil {
		fmt.Println("❌ Не удалось создать плейлист. Попробуйте позже.")
		app.Logger.Debug("ошибка создания плейлиста", "error", err)
		return
	}
	fmt.Printf("✅ Плейлист создан: %s (ID %d)\n", playlist.Name, playlist.ID)
}

// createPlaylistDeleteCommand создает подкоманду delete
func (app *Application) createPlaylistDeleteCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [playlistid]",
		Short: "Delete a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID плейлиста: %s", args[0])
			}
			if err := app.Client.DeletePlaylist(ctx, playlistID); err != nil {
				fmt.Println("❌ Не удалось удалить плейлист. Попробуйте позже.")
				app.Logger.Debug("ошибка удаления плейлиста", "playlist_id", playlistID, "error", err)
				return nil
			}
			fmt.Printf("🗑️  Плейлист %d удален\n", playlistID)
			return nil
		},
	}
}

// createPlaylistAddCommand создает подкоманду add
func (app *Application) createPlaylistAddCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add [playlistid] [trackid]",
		Short: "Add a track to a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID плейлиста: %s", args[0])
			}
			trackID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[1])
			}
			if err := app.Client.AddTrackToPlaylist(ctx, playlistID, trackID, nil); err != nil {
				fmt.Println("❌ Не удалось добавить трек в плейлист.")
				app.Logger.Debug("ошибка добавления трека в плейлист", "error", err)
				return nil
			}
			fmt.Printf("✅ Трек %d добавлен в плейлист %d\n", trackID, playlistID)
			return nil
		},
	}
}

// createPlaylistRemoveCommand создает подкоманду remove
func (app *Application) createPlaylistRemoveCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [playlistid] [trackid]",
		Short: "Remove a track from a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID плейлиста: %s", args[0])
			}
			trackID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[1])
			}
			if err := app.Client.RemoveTrackFromPlaylist(ctx, playlistID, trackID); err != nil {
				fmt.Println("❌ Не удалось удалить трек из плейлиста.")
				app.Logger.Debug("ошибка удаления трека из плейлиста", "error", err)
				return nil
			}
			fmt.Printf("🗑️  Трек %d удален из плейлиста %d\n", trackID, playlistID)
			return nil
		},
	}
}
