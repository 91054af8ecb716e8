package leasingapi

import (
	"context"
	"net/http"
)

// Login выполняет вход и возвращает токен бэкенда
// Пустой токен в успешном ответе не считается ошибкой клиента
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var resp TokenResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		endpoint: "auth.login",
		body:     req,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register регистрирует пользователя и возвращает токен бэкенда
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp TokenResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/register",
		endpoint: "auth.register",
		body:     req,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me возвращает текущего пользователя
func (c *Client) Me(ctx context.Context, token string) (*MeResponse, error) {
	var resp MeResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/user/me",
		endpoint: "user.me",
		token:    token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateAccount изменяет учетные данные пользователя
func (c *Client) UpdateAccount(ctx context.Context, token string, req UpdateAccountRequest) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/auth",
		endpoint: "auth.update",
		token:    token,
		body:     req,
	}, nil)
}
