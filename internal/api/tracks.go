package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// ListTracks возвращает список треков каталога.
// Жанр и поисковый запрос необязательны: пустая строка отключает фильтр.
func (c *Client) ListTracks(ctx context.Context, genre, search string) ([]Track, error) {
	query := url.Values{}
	if genre != "" && genre != "All" {
		query.Set("genre", genre)
	}
	if search != "" {
		query.Set("search", search)
	}

	path := "/tracks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list TrackList
	if err := c.do(ctx, http.MethodGet, path, nil, "", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// GetTrack возвращает детальную запись трека.
// Для авторизованной сессии ответ содержит флаги is_favorited и is_disliked.
func (c *Client) GetTrack(ctx context.Context, trackID int) (*Track, error) {
	var track Track
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tracks/%d", trackID), nil, "", &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// TrackUpload содержит данные для загрузки трека администратором
type TrackUpload struct {
	Title     string
	Artist    string
	Genre     string
	Duration  float64
	CoverPath string // Путь к локальному файлу обложки
	AudioPath string // Путь к локальному аудиофайлу
}

// CreateTrack загружает новый трек вместе с файлами обложки и аудио (multipart)
func (c *Client) CreateTrack(ctx context.Context, upload TrackUpload) (*Track, error) {
	body, contentType, err := encodeTrackForm(upload)
	if err != nil {
		return nil, err
	}

	var track Track
	if err := c.do(ctx, http.MethodPost, "/tracks", body, contentType, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// UpdateTrack обновляет существующий трек (multipart, файлы необязательны)
func (c *Client) UpdateTrack(ctx context.Context, trackID int, upload TrackUpload) (*Track, error) {
	body, contentType, err := encodeTrackForm(upload)
	if err != nil {
		return nil, err
	}

	var track Track
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tracks/%d", trackID), body, contentType, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// DeleteTrack удаляет трек из каталога (доступно администратору)
func (c *Client) DeleteTrack(ctx context.Context, trackID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tracks/%d", trackID), nil, "", nil)
}

// encodeTrackForm собирает multipart-форму с метаданными и файлами трека
func encodeTrackForm(upload TrackUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	_ = writer.WriteField("title", upload.Title)
	_ = writer.WriteField("artist", upload.Artist)
	_ = writer.WriteField("genre", upload.Genre)
	if upload.Duration > 0 {
		_ = writer.WriteField("duration", strconv.FormatFloat(upload.Duration, 'f', -1, 64))
	}

	for field, path := range map[string]string{
		"cover_file": upload.CoverPath,
		"audio_file": upload.AudioPath,
	} {
		if path == "" {
			continue
		}
		file, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка открытия файла %s: %w", path, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, file)
		}
		file.Close()
		if err != nil {
			return nil, "", fmt.Errorf("ошибка добавления файла %s в форму: %w", path, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("ошибка формирования формы: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

// ListFavorites возвращает список избранных треков текущего пользователя
func (c *Client) ListFavorites(ctx context.Context) ([]FavoriteEntry, error) {
	var list FavoriteList
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, "", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// AddFavorite добавляет трек в избранное
func (c *Client) AddFavorite(ctx context.Context, trackID int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/favorites/%d", trackID), struct{}{}, nil)
}

// RemoveFavorite удаляет трек из избранного
func (c *Client) RemoveFavorite(ctx context.Context, trackID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", trackID), nil, "", nil)
}

// ListDislikes возвращает список дизлайкнутых треков текущего пользователя
func (c *Client) ListDislikes(ctx context.Context) ([]FavoriteEntry, error) {
	var list FavoriteList
	if err := c.do(ctx, http.MethodGet, "/dislikes", nil, "", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// AddDislike добавляет трек в дизлайки
func (c *Client) AddDislike(ctx context.Context, trackID int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/dislikes/%d", trackID), struct{}{}, nil)
}

// RemoveDislike удаляет трек из дизлайков
func (c *Client) RemoveDislike(ctx context.Context, trackID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/dislikes/%d", trackID), nil, "", nil)
}
