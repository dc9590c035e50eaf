package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/storage"
)

// fakeAuthServer поднимает тестовый API с авторизацией и профилем
func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.FormValue("username") != "hazadus" || r.FormValue("password") != "correct" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.Token{AccessToken: "valid-token", TokenType: "bearer"})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var data api.RegisterData
		_ = json.NewDecoder(r.Body).Decode(&data)
		if data.Username == "taken" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Username already registered"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 2, Username: data.Username, Email: data.Email})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Username: "hazadus", Email: "hazadus@example.com", Role: api.RoleListener})
	})
	mux.HandleFunc("PUT /users/me", func(w http.ResponseWriter, r *http.Request) {
		var update api.UserUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		if update.Email == "bad-email" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "value is not a valid email address"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Username: "hazadus", Email: update.Email, DisplayName: update.DisplayName})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestManager(t *testing.T, serverURL string) (*Manager, *storage.Store, *api.Client) {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Ошибка создания Store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Ошибка загрузки состояния: %v", err)
	}

	client := api.NewClient(serverURL, serverURL)
	logger := log.New(io.Discard)
	return NewManager(client, store, logger), store, client
}

func TestLoginSuccess(t *testing.T) {
	server := fakeAuthServer(t)
	manager, store, _ := newTestManager(t, server.URL)

	if !manager.Login(context.Background(), "hazadus", "correct") {
		t.Fatalf("Ожидался успешный вход, ошибка: %s", manager.LastError())
	}

	if !manager.IsAuthenticated() {
		t.Error("Пользователь должен быть авторизован после входа")
	}
	user := manager.User()
	if user == nil || user.Username != "hazadus" {
		t.Errorf("Неверный профиль пользователя: %+v", user)
	}
	if store.Token() != "valid-token" {
		t.Errorf("Токен должен быть сохранен, получено %q", store.Token())
	}
}

func TestLoginFailure(t *testing.T) {
	server := fakeAuthServer(t)
	manager, _, _ := newTestManager(t, server.URL)

	if manager.Login(context.Background(), "hazadus", "wrong") {
		t.Fatal("Вход с неверным паролем должен завершиться неудачей")
	}

	// Состояние должно остаться неавторизованным, ошибка - в LastError
	if manager.IsAuthenticated() {
		t.Error("Пользователь не должен быть авторизован после неудачного входа")
	}
	if manager.User() != nil {
		t.Error("Профиль должен быть пустым после неудачного входа")
	}
	if manager.LastError() != "Incorrect username or password" {
		t.Errorf("Ожидалось сообщение сервера, получено %q", manager.LastError())
	}
}

func TestLogoutWithoutNetwork(t *testing.T) {
	server := fakeAuthServer(t)
	manager, store, _ := newTestManager(t, server.URL)

	if !manager.Login(context.Background(), "hazadus", "correct") {
		t.Fatalf("Ожидался успешный вход, ошибка: %s", manager.LastError())
	}

	// Сервер больше недоступен: выход должен сработать все равно
	server.Close()
	manager.Logout()

	if manager.IsAuthenticated() {
		t.Error("Пользователь должен быть разлогинен")
	}
	if manager.User() != nil {
		t.Error("Профиль должен быть очищен при выходе")
	}
	if store.Token() != "" {
		t.Error("Токен должен быть удален при выходе")
	}
}

func TestValidateStoredSession(t *testing.T) {
	server := fakeAuthServer(t)
	manager, store, _ := newTestManager(t, server.URL)

	if err := store.SetToken("valid-token"); err != nil {
		t.Fatalf("Ошибка сохранения токена: %v", err)
	}

	manager.ValidateStoredSession(context.Background())

	if !manager.IsAuthenticated() {
		t.Error("Сессия должна восстановиться по валидному токену")
	}
	user := manager.User()
	if user == nil || user.Username != "hazadus" {
		t.Errorf("Неверный профиль после восстановления: %+v", user)
	}
}

func TestValidateStoredSessionInvalidToken(t *testing.T) {
	server := fakeAuthServer(t)
	manager, store, _ := newTestManager(t, server.URL)

	if err := store.SetToken("stale-token"); err != nil {
		t.Fatalf("Ошибка сохранения токена: %v", err)
	}

	manager.ValidateStoredSession(context.Background())

	// Отклоненный сервером токен должен быть удален, ошибка не фатальна
	if manager.IsAuthenticated() {
		t.Error("Сессия не должна восстановиться по невалидному токену")
	}
	if store.Token() != "" {
		t.Error("Невалидный токен должен быть удален")
	}
}

func TestValidateStoredSessionExpiredToken(t *testing.T) {
	// Сервер не должен быть задействован: просроченный токен
	// отбрасывается локально
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("Просроченный токен не должен отправляться на сервер")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	manager, store, _ := newTestManager(t, server.URL)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "hazadus",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Ошибка создания тестового токена: %v", err)
	}
	if err := store.SetToken(expired); err != nil {
		t.Fatalf("Ошибка сохранения токена: %v", err)
	}

	manager.ValidateStoredSession(context.Background())

	if manager.IsAuthenticated() {
		t.Error("Сессия не должна восстановиться по просроченному токену")
	}
	if store.Token() != "" {
		t.Error("Просроченный токен должен быть удален")
	}
}

func TestRegisterFailureSurfacesServerError(t *testing.T) {
	server := fakeAuthServer(t)
	manager, _, _ := newTestManager(t, server.URL)

	ok := manager.Register(context.Background(), api.RegisterData{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "password123",
	})
	if ok {
		t.Fatal("Регистрация занятого имени должна завершиться неудачей")
	}
	if manager.LastError() != "Username already registered" {
		t.Errorf("Ожидалось сообщение сервера о занятом имени, получено %q", manager.LastError())
	}
}

func TestUpdateProfilePartialFailure(t *testing.T) {
	server := fakeAuthServer(t)
	manager, _, _ := newTestManager(t, server.URL)

	if !manager.Login(context.Background(), "hazadus", "correct") {
		t.Fatalf("Ожидался успешный вход, ошибка: %s", manager.LastError())
	}
	before := manager.User()

	ok := manager.UpdateProfile(context.Background(), api.UserUpdate{Email: "bad-email"})
	if ok {
		t.Fatal("Обновление с невалидным email должно завершиться неудачей")
	}

	// Прежний профиль должен остаться нетронутым
	after := manager.User()
	if after == nil || after.Email != before.Email {
		t.Errorf("Профиль изменился при неудачном обновлении: %+v", after)
	}
	if manager.LastError() == "" {
		t.Error("Ошибка обновления должна быть зафиксирована в LastError")
	}
}

func TestUpdateProfileSuccess(t *testing.T) {
	server := fakeAuthServer(t)
	manager, _, _ := newTestManager(t, server.URL)

	if !manager.Login(context.Background(), "hazadus", "correct") {
		t.Fatalf("Ожидался успешный вход, ошибка: %s", manager.LastError())
	}

	ok := manager.UpdateProfile(context.Background(), api.UserUpdate{
		Email:       "new@example.com",
		DisplayName: "Hazadus",
	})
	if !ok {
		t.Fatalf("Ожидалось успешное обновление, ошибка: %s", manager.LastError())
	}

	user := manager.User()
	if user.Email != "new@example.com" || user.DisplayName != "Hazadus" {
		t.Errorf("Профиль не обновлен: %+v", user)
	}
}
