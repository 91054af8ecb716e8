package leasingapi

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// GetProfile возвращает профиль пользователя с договорами
func (c *Client) GetProfile(ctx context.Context, token string) (*domain.Profile, error) {
	var resp profileDTO
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/Profile",
		endpoint: "profile.get",
		token:    token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// GetAnalytics возвращает аналитику лизингов пользователя
func (c *Client) GetAnalytics(ctx context.Context, token string) (*domain.Analytics, error) {
	var resp domain.Analytics
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/Analytics",
		endpoint: "analytics.get",
		token:    token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPaymentStats возвращает статистику платежей
func (c *Client) GetPaymentStats(ctx context.Context, token string) (*domain.PaymentStats, error) {
	var resp domain.PaymentStats
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/Analytics/payment-stats",
		endpoint: "analytics.payment_stats",
		token:    token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
