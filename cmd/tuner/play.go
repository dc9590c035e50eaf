package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/player"
	"github.com/hazadus/go-tuner/internal/utils"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [trackid]",
		Short: "Play a track by its ID",
		Long:  `Stream a track from the catalog by its ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			return app.playByID(ctx, trackID)
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Не критично для воспроизведения
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

func (app *Application) playByID(ctx context.Context, trackID int) error {
	// Каталог нужен для переключения на соседние треки
	app.Playback.LoadCatalog(ctx, "All")

	var track *api.Track
	for _, t := range app.Playback.Tracks() {
		if t.ID == trackID {
			found := t
			track = &found
			break
		}
	}
	if track == nil {
		// Трек может отсутствовать в каталоге (например, по фильтру),
		// пробуем запросить его напрямую
		detail, err := app.Client.GetTrack(ctx, trackID)
		if err != nil {
			return fmt.Errorf("трек с ID %d не найден", trackID)
		}
		track = detail
	}

	fmt.Printf("🎵 Сейчас играет:\n")
	fmt.Printf("   ID: %d\n", track.ID)
	fmt.Printf("   Исполнитель: %s\n", track.Artist)
	fmt.Printf("   Название: %s\n", track.Title)
	fmt.Printf("   Жанр: %s\n", track.Genre)
	if track.Duration > 0 {
		fmt.Printf("   Продолжительность: %s\n", utils.FormatTime(track.Duration))
	}
	fmt.Println()

	app.Playback.SelectTrack(ctx, *track)

	fmt.Printf("🌐 Начинаем потоковое воспроизведение...\n")
	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [n] - следующий трек, [p] - предыдущий\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// Горутина обработки клавиш
	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				continue
			}

			switch char {
			case ' ', '\n', '\r':
				app.Playback.TogglePlayPause()
				fmt.Printf("\r\033[K")
				if app.Playback.IsPlaying() {
					fmt.Printf("▶️  Воспроизведение\n")
				} else {
					fmt.Printf("⏸️  Пауза\n")
				}
			case 'n':
				app.Playback.PlayNext(ctx)
				app.printCurrent()
			case 'p':
				app.Playback.PlayPrevious(ctx)
				app.printCurrent()
			}
		}
	}()

	// Главный цикл обработки событий
	for {
		select {
		case status := <-app.Player.Progress():
			displayProgress(status)
		case <-app.Player.Done():
			fmt.Println("\n✅ Воспроизведение завершено")
			return nil
		case <-interrupt:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			app.Player.Stop()
			return nil
		case <-ctx.Done():
			fmt.Println("\n🚫 Операция отменена")
			app.Player.Stop()
			return ctx.Err()
		}
	}
}

// printCurrent выводит строку с текущим треком
func (app *Application) printCurrent() {
	if track := app.Playback.Current(); track != nil {
		fmt.Printf("\r\033[K🎵 %s - %s\n", track.Artist, track.Title)
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(status player.Status) {
	statusIcon := "⏱️"
	if !status.IsPlaying {
		statusIcon = "⏸️"
	}

	if status.Duration > 0 {
		percent := status.Position.Seconds() / status.Duration.Seconds() * 100
		fmt.Printf("\r%s  %.1f%% | %s / %s",
			statusIcon,
			percent,
			utils.FormatDuration(status.Position),
			utils.FormatDuration(status.Duration))
	} else {
		fmt.Printf("\r%s  %s | Потоковое воспроизведение",
			statusIcon,
			utils.FormatDuration(status.Position))
	}
}
