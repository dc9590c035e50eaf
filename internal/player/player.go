// Package player содержит аудиовыход, построенный на beep
package player

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-tuner/internal/streaming"
)

// Status представляет текущий статус воспроизведения
type Status struct {
	Position  time.Duration // Текущая позиция
	Duration  time.Duration // Общая продолжительность
	IsPlaying bool          // Воспроизводится ли трек
}

// Player воспроизводит аудио по URL. В приложении существует единственный
// экземпляр: динамик инициализируется один раз, все операции с позицией,
// громкостью и паузой идут только через него.
type Player struct {
	progressChan chan Status
	doneChan     chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	isInitialized bool
	isPaused      bool
	volumeLevel   float64
	sampleRate    beep.SampleRate

	streamer     beep.StreamSeekCloser
	ctrl         *beep.Ctrl
	volume       *effects.Volume
	streamReader *streaming.Reader
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		volumeLevel:  1.0,
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, в который приходит сигнал о естественном
// завершении воспроизведения трека
func (p *Player) Done() <-chan struct{} {
	return p.doneChan
}

// Play начинает потоковое воспроизведение аудио по URL,
// останавливая текущий трек, если он играет
func (p *Player) Play(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopInternal()

	const bufferSize = 256 * 1024
	streamReader, err := streaming.NewReader(p.ctx, url, bufferSize)
	if err != nil {
		return fmt.Errorf("ошибка создания потокового ридера: %w", err)
	}
	p.streamReader = streamReader

	streamer, format, err := mp3.Decode(streamReader)
	if err != nil {
		streamReader.Close()
		p.streamReader = nil
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	p.streamer = streamer
	p.sampleRate = format.SampleRate

	// Инициализируем динамик только один раз
	if !p.isInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			streamer.Close()
			streamReader.Close()
			p.streamer = nil
			p.streamReader = nil
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
	}

	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.isPaused = false

	// Громкость регулируется логарифмическим фильтром поверх контроллера паузы
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   linearToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Сигнал о естественном завершении. speaker.Clear при остановке
		// снимает поток без вызова callback, поэтому ложных сигналов нет.
		select {
		case p.doneChan <- struct{}{}:
		default:
		}
	})))

	go p.monitorProgress(format)

	return nil
}

// Pause приостанавливает воспроизведение
func (p *Player) Pause() {
	p.setPaused(true)
}

// Resume возобновляет воспроизведение
func (p *Player) Resume() {
	p.setPaused(false)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.isPaused = paused
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Seek перематывает текущий трек на указанную позицию
func (p *Player) Seek(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return nil
	}
	if position < 0 {
		position = 0
	}

	speaker.Lock()
	defer speaker.Unlock()

	sample := p.sampleRate.N(position)
	if sample > p.streamer.Len() {
		sample = p.streamer.Len()
	}
	if err := p.streamer.Seek(sample); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	return nil
}

// SetVolume устанавливает громкость в диапазоне [0, 1]
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volumeLevel = level
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = linearToVolume(level)
	p.volume.Silent = level <= 0
	speaker.Unlock()
}

// Position возвращает текущую позицию воспроизведения
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.sampleRate.D(p.streamer.Position())
}

// Duration возвращает продолжительность текущего трека
// (0, если трек не загружен или длина потока неизвестна)
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer.Len() <= 0 {
		return 0
	}
	return p.sampleRate.D(p.streamer.Len())
}

// IsPlaying возвращает true, если трек воспроизводится и не на паузе
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.isPaused
}

// Stop останавливает воспроизведение и освобождает поток
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
		p.volume = nil
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.streamReader != nil {
		p.streamReader.Close()
		p.streamReader = nil
	}
	p.isPaused = false
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// monitorProgress отправляет обновления статуса раз в секунду,
// пока трек загружен
func (p *Player) monitorProgress(format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.streamer == nil || p.ctrl == nil {
				p.mu.Unlock()
				return
			}

			speaker.Lock()
			position := format.SampleRate.D(p.streamer.Position())
			total := format.SampleRate.D(p.streamer.Len())
			paused := p.isPaused
			speaker.Unlock()
			p.mu.Unlock()

			status := Status{
				Position:  position,
				Duration:  total,
				IsPlaying: !paused,
			}

			select {
			case p.progressChan <- status:
			default:
				// Если канал занят, пропускаем обновление
			}
		}
	}
}

// linearToVolume переводит линейную громкость [0, 1] в логарифмическую
// шкалу effects.Volume (0 соответствует исходной громкости)
func linearToVolume(level float64) float64 {
	if level <= 0 {
		return 0
	}
	return math.Log2(level)
}
