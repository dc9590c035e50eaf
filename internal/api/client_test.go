package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMediaURL(t *testing.T) {
	client := NewClient("http://api.example.com/api/v1", "http://api.example.com")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"путь с прямыми слэшами", "/media/audio/1.mp3", "http://api.example.com/media/audio/1.mp3"},
		{"путь с обратными слэшами", `media\audio\1.mp3`, "http://api.example.com/media/audio/1.mp3"},
		{"путь без ведущего слэша", "media/covers/1.jpg", "http://api.example.com/media/covers/1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := client.MediaURL(tt.path)
			if result != tt.expected {
				t.Errorf("MediaURL(%q) = %q, ожидалось %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL)
	_, err := client.Login(context.Background(), "user", "wrong")
	if err == nil {
		t.Fatal("Ожидалась ошибка при неверных учетных данных")
	}

	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("Ожидалась ошибка со статусом 401, получено: %v", err)
	}

	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Ожидалась ошибка типа *Error, получено %T", err)
	}
	if apiErr.Detail != "Incorrect username or password" {
		t.Errorf("Неверное поле detail: %q", apiErr.Detail)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(User{ID: 1, Username: "hazadus"})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL)
	client.SetToken("secret-token")

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Ошибка запроса профиля: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Ожидался заголовок 'Bearer secret-token', получен %q", gotAuth)
	}
	if user.Username != "hazadus" {
		t.Errorf("Неверное имя пользователя: %q", user.Username)
	}
}

func TestListTracksQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(TrackList{Items: []Track{{ID: 1, Title: "Test"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL)

	tracks, err := client.ListTracks(context.Background(), "Ambient", "")
	if err != nil {
		t.Fatalf("Ошибка запроса треков: %v", err)
	}
	if gotQuery != "genre=Ambient" {
		t.Errorf("Ожидался запрос genre=Ambient, получен %q", gotQuery)
	}
	if len(tracks) != 1 || tracks[0].Title != "Test" {
		t.Errorf("Неверный список треков: %+v", tracks)
	}

	// Жанр "All" отключает фильтр
	_, err = client.ListTracks(context.Background(), "All", "")
	if err != nil {
		t.Fatalf("Ошибка запроса треков: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("Жанр All не должен добавлять параметр запроса, получен %q", gotQuery)
	}
}

func TestTrackFlagsAbsent(t *testing.T) {
	var track Track
	if err := json.Unmarshal([]byte(`{"id": 1, "title": "Test"}`), &track); err != nil {
		t.Fatalf("Ошибка разбора JSON: %v", err)
	}

	if track.IsFavorited != nil {
		t.Error("Флаг is_favorited должен быть nil, когда сервер его не передал")
	}
	if track.Favorited() {
		t.Error("Favorited() должен возвращать false для отсутствующего флага")
	}
	if track.Disliked() {
		t.Error("Disliked() должен возвращать false для отсутствующего флага")
	}
}
