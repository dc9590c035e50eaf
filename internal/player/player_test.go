package player

import (
	"testing"
)

func TestPlayInvalidURL(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	// Ожидаем ошибку: по этому адресу нет аудиофайла
	err := p.Play("https://non-existent-domain.invalid/test.mp3")
	if err == nil {
		t.Error("Ожидалась ошибка при воспроизведении несуществующего URL")
	}

	if p.IsPlaying() {
		t.Error("Плеер не должен воспроизводить при ошибке загрузки")
	}
}

func TestStateWithoutTrack(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	if p.IsPlaying() {
		t.Error("Плеер не должен воспроизводить в начальном состоянии")
	}
	if p.Position() != 0 {
		t.Error("Позиция должна быть нулевой без трека")
	}
	if p.Duration() != 0 {
		t.Error("Продолжительность должна быть нулевой без трека")
	}

	// Операции без трека должны быть безопасными no-op
	p.Pause()
	p.Resume()
	if err := p.Seek(10); err != nil {
		t.Errorf("Seek без трека должен быть no-op, получена ошибка: %v", err)
	}
	p.SetVolume(0.5)
	p.Stop()
}

func TestPlayerChannels(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	if p.Progress() == nil {
		t.Error("Канал прогресса не должен быть nil")
	}
	if p.Done() == nil {
		t.Error("Канал завершения не должен быть nil")
	}

	select {
	case <-p.Done():
		t.Error("Канал завершения не должен содержать сигналов изначально")
	default:
	}
}

func TestLinearToVolume(t *testing.T) {
	if linearToVolume(1.0) != 0 {
		t.Error("Громкость 1.0 должна соответствовать нулю логарифмической шкалы")
	}
	if linearToVolume(0.5) >= 0 {
		t.Error("Громкость 0.5 должна быть отрицательной на логарифмической шкале")
	}
	if linearToVolume(0) != 0 {
		t.Error("Нулевая громкость обрабатывается флагом Silent, не значением")
	}
}
