package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// createReviewsCommand создает команду reviews с подкомандами
func (app *Application) createReviewsCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews [trackid]",
		Short: "Show track reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.listReviews(ctx, trackID)
			return nil
		},
	}

	cmd.AddCommand(app.createReviewAddCommand(ctx))

	return cmd
}

func (app *Application) listReviews(ctx context.Context, trackID int) {
	reviews, err := app.Client.ListReviews(ctx, trackID)
	if err != nil {
		fmt.Println("❌ Не удалось загрузить рецензии. Попробуйте позже.")
		app.Logger.Debug("ошибка загрузки рецензий", "track_id", trackID, "error", err)
		return
	}

	if len(reviews) == 0 {
		fmt.Println("💬 Рецензий пока нет.")
		return
	}

	fmt.Printf("💬 Рецензий: %d\n\n", len(reviews))
	for _, review := range reviews {
		author := fmt.Sprintf("пользователь %d", review.UserID)
		if review.User != nil {
			author = review.User.Username
		}
		fmt.Printf("— %s (%s):\n", author, review.CreatedAt.Format("02.01.2006"))
		fmt.Printf("  %s\n\n", review.Text)
	}
}

// createReviewAddCommand создает подкоманду add
func (app *Application) createReviewAddCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add [trackid] [text...]",
		Short: "Add a review for a track",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			app.addReview(ctx, trackID, strings.Join(args[1:], " "))
			return nil
		},
	}
}

func (app *Application) addReview(ctx context.Context, trackID int, text string) {
	if !app.Session.IsAuthenticated() {
		fmt.Println("👤 Войдите, чтобы оставлять рецензии: 'tuner login'.")
		return
	}

	if _, err := app.Client.CreateReview(ctx, trackID, text); err != nil {
		fmt.Println("❌ Не удалось сохранить рецензию. Попробуйте позже.")
		app.Logger.Debug("ошибка создания рецензии", "track_id", trackID, "error", err)
		return
	}
	fmt.Println("✅ Рецензия сохранена")
}
