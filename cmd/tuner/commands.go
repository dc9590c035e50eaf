package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tuner",
		Short: "A terminal client for the music streaming service",
		Long:  `A terminal client for the music streaming service: browse the catalog, play tracks, manage favorites and playlists.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createLoginCommand(ctx))
	rootCmd.AddCommand(app.createLogoutCommand())
	rootCmd.AddCommand(app.createRegisterCommand(ctx))
	rootCmd.AddCommand(app.createWhoamiCommand())
	rootCmd.AddCommand(app.createProfileCommand(ctx))
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createFavCommand(ctx))
	rootCmd.AddCommand(app.createDislikeCommand(ctx))
	rootCmd.AddCommand(app.createFavoritesCommand(ctx))
	rootCmd.AddCommand(app.createDislikesCommand(ctx))
	rootCmd.AddCommand(app.createPlaylistsCommand(ctx))
	rootCmd.AddCommand(app.createReviewsCommand(ctx))
	rootCmd.AddCommand(app.createUsersCommand(ctx))
	rootCmd.AddCommand(app.createUploadCommand(ctx))
	rootCmd.AddCommand(app.createTrackCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
