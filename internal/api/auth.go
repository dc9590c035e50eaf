package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Login обменивает логин и пароль на токен авторизации.
// Сервер ожидает форму в стиле OAuth2.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	err := c.do(ctx, http.MethodPost, "/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Register создает нового пользователя
func (c *Client) Register(ctx context.Context, data RegisterData) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe обновляет профиль текущего пользователя.
// Передаются только заполненные поля.
func (c *Client) UpdateMe(ctx context.Context, update UserUpdate) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPut, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers возвращает список всех пользователей (доступно администратору)
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser удаляет пользователя по ID (доступно администратору)
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, "", nil)
}
