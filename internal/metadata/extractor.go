// Package metadata извлекает метаданные аудиофайлов для загрузки треков
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"
)

// TrackInfo хранит метаданные трека, подготовленные к загрузке на сервер
type TrackInfo struct {
	Artist   string
	Title    string
	Genre    string
	Duration float64 // Длительность в секундах
}

// Extractor извлекает метаданные из аудиофайлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFromReader извлекает теги из io.ReadSeeker. Если тегов нет
// или файл поврежден, метаданные восстанавливаются из имени файла.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) TrackInfo {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return e.fromFileName(source)
	}

	tags, err := tag.ReadFrom(reader)
	if err != nil {
		return e.fromFileName(source)
	}

	info := TrackInfo{
		Artist: tags.Artist(),
		Title:  tags.Title(),
		Genre:  tags.Genre(),
	}
	if info.Artist == "" && info.Title == "" {
		return e.fromFileName(source)
	}
	return info
}

// ExtractFromFile извлекает теги из файла
func (e *Extractor) ExtractFromFile(filePath string) TrackInfo {
	file, err := os.Open(filePath)
	if err != nil {
		return e.fromFileName(filePath)
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath)
}

// GetDuration получает длительность MP3 файла
func (e *Extractor) GetDuration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Probe собирает полные метаданные файла для загрузки: теги плюс
// длительность. Длительность обязательна, без нее сервер отклонит трек.
func (e *Extractor) Probe(filePath string) (*TrackInfo, error) {
	duration, err := e.GetDuration(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения длительности: %w", err)
	}

	info := e.ExtractFromFile(filePath)
	info.Duration = duration.Seconds()
	return &info, nil
}

// fromFileName восстанавливает метаданные из имени файла
func (e *Extractor) fromFileName(source string) TrackInfo {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	// Пытаемся разобрать имя файла в формате "Artist - Title"
	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return TrackInfo{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return TrackInfo{
		Artist: "Unknown Artist",
		Title:  nameWithoutExt,
	}
}
