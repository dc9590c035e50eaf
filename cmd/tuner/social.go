package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// createFavCommand создает команду fav (переключение избранного)
func (app *Application) createFavCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "fav [trackid]",
		Short: "Toggle a track's favorite flag",
		Long:  `Add a track to favorites or remove it if it is already there.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.toggleFavorite(ctx, trackID)
			return nil
		},
	}
}

func (app *Application) toggleFavorite(ctx context.Context, trackID int) {
	if err := app.Playback.ToggleFavorite(ctx, trackID); err != nil {
		fmt.Printf("❌ %s\n", app.Playback.LastError())
		return
	}

	track, err := app.Client.GetTrack(ctx, trackID)
	if err != nil {
		fmt.Println("✅ Готово")
		return
	}
	if track.Favorited() {
		fmt.Printf("♥ Трек добавлен в избранное: %s - %s\n", track.Artist, track.Title)
	} else {
		fmt.Printf("♡ Трек удален из избранного: %s - %s\n", track.Artist, track.Title)
	}
}

// createDislikeCommand создает команду dislike (переключение дизлайка)
func (app *Application) createDislikeCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "dislike [trackid]",
		Short: "Toggle a track's dislike flag",
		Long:  `Dislike a track or remove the dislike if it is already set. Disliking removes the track from favorites.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.toggleDislike(ctx, trackID)
			return nil
		},
	}
}

func (app *Application) toggleDislike(ctx context.Context, trackID int) {
	if err := app.Playback.ToggleDislike(ctx, trackID); err != nil {
		fmt.Printf("❌ %s\n", app.Playback.LastError())
		return
	}

	track, err := app.Client.GetTrack(ctx, trackID)
	if err != nil {
		fmt.Println("✅ Готово")
		return
	}
	if track.Disliked() {
		fmt.Printf("✖ Дизлайк поставлен: %s - %s\n", track.Artist, track.Title)
	} else {
		fmt.Printf("✔ Дизлайк снят: %s - %s\n", track.Artist, track.Title)
	}
}
