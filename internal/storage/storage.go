// Package storage содержит локальное состояние клиента, переживающее перезапуск
package storage

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// State хранит персистентное состояние клиента: токен авторизации,
// последний выбранный трек и громкость.
type State struct {
	Token          string  `yaml:"token,omitempty"`
	CurrentTrackID int     `yaml:"current_track_id,omitempty"`
	Volume         float64 `yaml:"volume"`
}

// Store управляет загрузкой и сохранением состояния клиента в yaml-файл
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewStore создает новый Store для указанного файла
func NewStore(filePath string) (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)
	return &Store{path: path}, nil
}

// Load загружает состояние из файла.
// Если файл не найден, инициализируем пустым состоянием.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = State{}
			return nil
		}
		return fmt.Errorf("ошибка чтения файла состояния: %w", err)
	}
	if len(data) == 0 {
		s.state = State{}
		return nil
	}
	if err := yaml.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("ошибка разбора файла состояния: %w", err)
	}
	return nil
}

// save сохраняет состояние в файл (должен вызываться под мьютексом)
func (s *Store) save() error {
	data, err := yaml.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("ошибка сериализации состояния: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("ошибка записи файла состояния: %w", err)
	}
	return nil
}

// Token возвращает сохраненный токен авторизации
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// SetToken сохраняет токен авторизации
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.save()
}

// ClearToken удаляет сохраненный токен
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	return s.save()
}

// CurrentTrackID возвращает ID последнего выбранного трека (0, если не сохранен)
func (s *Store) CurrentTrackID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentTrackID
}

// SetCurrentTrackID сохраняет ID выбранного трека для восстановления после перезапуска
func (s *Store) SetCurrentTrackID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentTrackID = id
	return s.save()
}

// Volume возвращает сохраненную громкость
func (s *Store) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Volume
}

// SetVolume сохраняет громкость
func (s *Store) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Volume = v
	return s.save()
}
