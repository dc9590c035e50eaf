// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Значения по умолчанию для подключения к API
const (
	defaultAPIURL   = "http://127.0.0.1:8000/api/v1"
	defaultMediaURL = "http://127.0.0.1:8000"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	APIURL    string  `yaml:"api_url"`    // Базовый URL REST API
	MediaURL  string  `yaml:"media_url"`  // Хост, с которого раздаются обложки и аудио
	StatePath string  `yaml:"state_path"` // Путь к файлу состояния клиента
	Volume    float64 `yaml:"volume"`     // Громкость по умолчанию, от 0 до 1
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствие файла не является ошибкой: используются значения по умолчанию.
// Переменные окружения TUNER_API_URL и TUNER_MEDIA_URL (в том числе из .env)
// имеют приоритет над файлом.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{
		APIURL:    defaultAPIURL,
		MediaURL:  defaultMediaURL,
		StatePath: "~/.tuner_state",
		Volume:    0.8,
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Подхватываем .env, если он есть рядом. Ошибку игнорируем:
	// файл необязателен.
	_ = godotenv.Load()

	if v := os.Getenv("TUNER_API_URL"); v != "" {
		config.APIURL = v
	}
	if v := os.Getenv("TUNER_MEDIA_URL"); v != "" {
		config.MediaURL = v
	}

	if config.Volume < 0 || config.Volume > 1 {
		config.Volume = 0.8
	}

	// Раскрываем тильду в пути к файлу состояния
	config.StatePath = strings.Replace(config.StatePath, "~", home, 1)

	return config, nil
}
