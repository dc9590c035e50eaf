// Package session содержит менеджер сессии пользователя
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/storage"
)

// Manager владеет состоянием авторизации: текущим пользователем и его ролью.
// Все операции не возвращают ошибки наверх как исключительные ситуации:
// неудача фиксируется в LastError, а состояние остается в значении
// до начала операции, чтобы любой экран мог отобразить результат.
type Manager struct {
	client *api.Client
	store  *storage.Store
	logger *log.Logger

	mu            sync.RWMutex
	authenticated bool
	user          *api.User
	lastError     string
}

// NewManager создает новый менеджер сессии
func NewManager(client *api.Client, store *storage.Store, logger *log.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: logger,
	}
}

// IsAuthenticated возвращает true, если пользователь авторизован
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// User возвращает копию профиля текущего пользователя (nil, если не авторизован)
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// LastError возвращает сообщение о последней ошибке операции
func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// ValidateStoredSession проверяет сохраненный токен при запуске приложения.
// Невалидный или просроченный токен удаляется; ошибка не фатальна,
// приложение продолжает работу без авторизации.
func (m *Manager) ValidateStoredSession(ctx context.Context) {
	token := m.store.Token()
	if token == "" {
		return
	}

	// Просроченный токен отбрасываем без обращения к серверу
	if expired, err := tokenExpired(token); err == nil && expired {
		m.logger.Debug("сохраненный токен просрочен, удаляем")
		m.purgeToken()
		return
	}

	m.client.SetToken(token)

	user, err := m.client.Me(ctx)
	if err != nil {
		m.logger.Debug("сервер отклонил сохраненный токен", "error", err)
		m.purgeToken()
		return
	}

	m.mu.Lock()
	m.authenticated = true
	m.user = user
	m.mu.Unlock()

	m.logger.Info("сессия восстановлена", "username", user.Username)
}

// Login обменивает учетные данные на токен и загружает профиль.
// При неудаче состояние остается неавторизованным, ошибка сохраняется
// в LastError, возвращается false.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	m.setError("")

	token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.logger.Debug("ошибка авторизации", "username", username, "error", err)
		m.setError(humanizeError(err, "Не удалось войти. Проверьте имя пользователя и пароль."))
		return false
	}

	if err := m.store.SetToken(token.AccessToken); err != nil {
		m.logger.Warn("не удалось сохранить токен", "error", err)
	}
	m.client.SetToken(token.AccessToken)

	user, err := m.client.Me(ctx)
	if err != nil {
		// Токен получен, но профиль недоступен: откатываемся к
		// неавторизованному состоянию
		m.purgeToken()
		m.setError(humanizeError(err, "Не удалось загрузить профиль пользователя."))
		return false
	}

	m.mu.Lock()
	m.authenticated = true
	m.user = user
	m.mu.Unlock()

	m.logger.Info("вход выполнен", "username", user.Username, "role", user.Role)
	return true
}

// Register создает учетную запись и сразу выполняет вход с теми же данными
func (m *Manager) Register(ctx context.Context, data api.RegisterData) bool {
	m.setError("")

	if _, err := m.client.Register(ctx, data); err != nil {
		m.logger.Debug("ошибка регистрации", "username", data.Username, "error", err)
		m.setError(humanizeError(err, "Не удалось зарегистрироваться. Попробуйте еще раз."))
		return false
	}

	return m.Login(ctx, data.Username, data.Password)
}

// Logout сбрасывает сессию. Всегда успешен, сетевых запросов не требует.
func (m *Manager) Logout() {
	m.purgeToken()
	m.logger.Info("выход выполнен")
}

// UpdateProfile отправляет измененные поля профиля.
// При неудаче прежний профиль остается нетронутым.
func (m *Manager) UpdateProfile(ctx context.Context, update api.UserUpdate) bool {
	m.setError("")

	if !m.IsAuthenticated() {
		m.setError("Для изменения профиля требуется вход.")
		return false
	}

	user, err := m.client.UpdateMe(ctx, update)
	if err != nil {
		m.logger.Debug("ошибка обновления профиля", "error", err)
		m.setError(humanizeError(err, "Не удалось обновить профиль. Попробуйте еще раз."))
		return false
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("профиль обновлен", "username", user.Username)
	return true
}

// purgeToken удаляет токен и сбрасывает состояние в неавторизованное
func (m *Manager) purgeToken() {
	if err := m.store.ClearToken(); err != nil {
		m.logger.Warn("не удалось удалить токен", "error", err)
	}
	m.client.SetToken("")

	m.mu.Lock()
	m.authenticated = false
	m.user = nil
	m.mu.Unlock()
}

// setError записывает сообщение об ошибке в состояние
func (m *Manager) setError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = msg
}

// tokenExpired проверяет срок действия токена без проверки подписи.
// Подпись проверяет сервер; клиенту достаточно заглянуть в exp,
// чтобы не ходить в сеть с заведомо мертвым токеном.
func tokenExpired(token string) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return exp.Before(time.Now()), nil
}

// humanizeError возвращает detail сервера, если он есть, иначе запасное сообщение
func humanizeError(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
