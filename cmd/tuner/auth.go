package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/api"
)

// createLoginCommand создает команду login с привязкой к экземпляру приложения
func (app *Application) createLoginCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username] [password]",
		Short: "Log in to the streaming service",
		Long:  `Log in to the streaming service and store the session token locally.`,
		Args:  cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			app.login(ctx, args[0], args[1])
		},
	}
}

func (app *Application) login(ctx context.Context, username, password string) {
	if !app.Session.Login(ctx, username, password) {
		fmt.Printf("❌ %s\n", app.Session.LastError())
		return
	}

	user := app.Session.User()
	fmt.Printf("✅ Вход выполнен: %s\n", user.Username)
	if user.IsAdmin() {
		fmt.Println("🔑 Доступны команды администратора")
	}
}

// createLogoutCommand создает команду logout
func (app *Application) createLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Run: func(_ *cobra.Command, _ []string) {
			app.Session.Logout()
			fmt.Println("👋 Сессия завершена")
		},
	}
}

// createRegisterCommand создает команду register
func (app *Application) createRegisterCommand(ctx context.Context) *cobra.Command {
	var email string
	var displayName string

	cmd := &cobra.Command{
		Use:   "register [username] [password]",
		Short: "Register a new account",
		Long:  `Register a new account and log in with it right away.`,
		Args:  cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			app.register(ctx, api.RegisterData{
				Username:    args[0],
				Password:    args[1],
				Email:       email,
				DisplayName: displayName,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (app *Application) register(ctx context.Context, data api.RegisterData) {
	if !app.Session.Register(ctx, data) {
		fmt.Printf("❌ %s\n", app.Session.LastError())
		return
	}
	fmt.Printf("✅ Аккаунт создан, вход выполнен: %s\n", data.Username)
}

// createWhoamiCommand создает команду whoami
func (app *Application) createWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Run: func(_ *cobra.Command, _ []string) {
			app.whoami()
		},
	}
}

func (app *Application) whoami() {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Вход не выполнен. Используйте 'tuner login'.")
		return
	}

	user := app.Session.User()
	fmt.Printf("👤 %s\n", user.Username)
	if user.DisplayName != "" {
		fmt.Printf("   Имя: %s\n", user.DisplayName)
	}
	if user.Email != "" {
		fmt.Printf("   Email: %s\n", user.Email)
	}
	fmt.Printf("   Роль: %s\n", user.Role)
}

// createProfileCommand создает команду обновления профиля
func (app *Application) createProfileCommand(ctx context.Context) *cobra.Command {
	var update api.UserUpdate

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update profile fields",
		Long:  `Update profile fields. Only the provided flags are sent to the server.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.updateProfile(ctx, update)
		},
	}

	cmd.Flags().StringVar(&update.Username, "username", "", "new username")
	cmd.Flags().StringVar(&update.Email, "email", "", "new email address")
	cmd.Flags().StringVar(&update.DisplayName, "display-name", "", "new display name")
	cmd.Flags().StringVar(&update.Password, "password", "", "new password")

	return cmd
}

func (app *Application) updateProfile(ctx context.Context, update api.UserUpdate) {
	if update == (api.UserUpdate{}) {
		fmt.Println("💡 Укажите хотя бы одно поле для обновления")
		return
	}

	if !app.Session.UpdateProfile(ctx, update) {
		fmt.Printf("❌ %s\n", app.Session.LastError())
		return
	}
	fmt.Println("✅ Профиль обновлен")
}
