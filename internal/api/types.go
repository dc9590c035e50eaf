package api

import "time"

// Роли пользователей, возвращаемые сервером
const (
	RoleListener = "user"
	RoleAdmin    = "admin"
)

// User представляет профиль пользователя
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
	Role        string `json:"role"`
}

// IsAdmin возвращает true, если пользователь имеет роль администратора
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RegisterData содержит данные для регистрации нового пользователя
type RegisterData struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// UserUpdate содержит изменяемые поля профиля.
// Передаются только заполненные поля.
type UserUpdate struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password,omitempty"`
}

// Token представляет ответ сервера на запрос авторизации
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Track представляет трек каталога.
// Флаги IsFavorited и IsDisliked присутствуют только в детальном ответе
// для авторизованной сессии; в остальных случаях они равны nil, и
// вызывающий код не должен полагаться на их наличие.
type Track struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	Genre          string  `json:"genre"`
	Duration       float64 `json:"duration"` // Длительность в секундах
	CoverPath      string  `json:"cover_path"`
	AudioPath      string  `json:"audio_path"`
	FavoritesCount int     `json:"favorites_count,omitempty"`
	DislikesCount  int     `json:"dislikes_count,omitempty"`
	ReviewsCount   int     `json:"reviews_count,omitempty"`
	IsFavorited    *bool   `json:"is_favorited,omitempty"`
	IsDisliked     *bool   `json:"is_disliked,omitempty"`
}

// Favorited возвращает значение флага избранного (false, если флаг не передан)
func (t *Track) Favorited() bool {
	return t.IsFavorited != nil && *t.IsFavorited
}

// Disliked возвращает значение флага дизлайка (false, если флаг не передан)
func (t *Track) Disliked() bool {
	return t.IsDisliked != nil && *t.IsDisliked
}

// TrackList представляет постраничный список треков
type TrackList struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
	Pages int     `json:"pages"`
}

// FavoriteEntry представляет запись избранного с вложенным треком
type FavoriteEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TrackID   int       `json:"track_id"`
	CreatedAt time.Time `json:"created_at"`
	Track     Track     `json:"track"`
}

// FavoriteList представляет постраничный список избранного
type FavoriteList struct {
	Items []FavoriteEntry `json:"items"`
	Total int             `json:"total"`
}

// Playlist представляет плейлист пользователя
type Playlist struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"is_public"`
	CoverPath   *string `json:"cover_path"`
}

// PlaylistCreate содержит данные для создания плейлиста
type PlaylistCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// PlaylistTrack представляет трек внутри плейлиста с его позицией
type PlaylistTrack struct {
	Track    Track `json:"track"`
	Position int   `json:"position"`
}

// PlaylistWithTracks представляет плейлист вместе с упорядоченным списком треков
type PlaylistWithTracks struct {
	Playlist
	Tracks []PlaylistTrack `json:"tracks"`
}

// PlaylistList представляет постраничный список плейлистов
type PlaylistList struct {
	Items []Playlist `json:"items"`
	Total int        `json:"total"`
}

// Review представляет рецензию на трек
type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TrackID   int       `json:"track_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *User     `json:"user,omitempty"`
}

// ReviewList представляет постраничный список рецензий
type ReviewList struct {
	Items []Review `json:"items"`
	Total int      `json:"total"`
}
