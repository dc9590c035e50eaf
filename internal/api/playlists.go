package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListPlaylists возвращает плейлисты текущего пользователя
func (c *Client) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	var list PlaylistList
	if err := c.do(ctx, http.MethodGet, "/playlists", nil, "", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// GetPlaylist возвращает плейлист вместе с треками
func (c *Client) GetPlaylist(ctx context.Context, playlistID int) (*PlaylistWithTracks, error) {
	var playlist PlaylistWithTracks
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/playlists/%d", playlistID), nil, "", &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist создает новый плейлист
func (c *Client) CreatePlaylist(ctx context.Context, data PlaylistCreate) (*Playlist, error) {
	var playlist Playlist
	if err := c.doJSON(ctx, http.MethodPost, "/playlists", data, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylist удаляет плейлист
func (c *Client) DeletePlaylist(ctx context.Context, playlistID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d", playlistID), nil, "", nil)
}

// AddTrackToPlaylist добавляет трек в плейлист.
// Нулевая позиция означает добавление в конец.
func (c *Client) AddTrackToPlaylist(ctx context.Context, playlistID, trackID int, position *int) error {
	payload := struct {
		TrackID  int  `json:"track_id"`
		Position *int `json:"position"`
	}{TrackID: trackID, Position: position}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/playlists/%d/tracks", playlistID), payload, nil)
}

// RemoveTrackFromPlaylist удаляет трек из плейлиста
func (c *Client) RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d/tracks/%d", playlistID, trackID), nil, "", nil)
}

// ListReviews возвращает рецензии на указанный трек
func (c *Client) ListReviews(ctx context.Context, trackID int) ([]Review, error) {
	query := url.Values{}
	query.Set("track_id", strconv.Itoa(trackID))

	var list ReviewList
	if err := c.do(ctx, http.MethodGet, "/reviews?"+query.Encode(), nil, "", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// CreateReview создает рецензию на трек
func (c *Client) CreateReview(ctx context.Context, trackID int, text string) (*Review, error) {
	payload := struct {
		TrackID int    `json:"track_id"`
		Text    string `json:"text"`
	}{TrackID: trackID, Text: text}

	var review Review
	if err := c.doJSON(ctx, http.MethodPost, "/reviews", payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
