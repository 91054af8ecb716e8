package leasingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// AdminList возвращает страницу ресурса консоли администратора
// Бэкенд отдает либо массив, либо объект {items: [...]}
func (c *Client) AdminList(ctx context.Context, token string, resource domain.AdminResource, page, pageSize int) ([]domain.AdminItem, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/admin/" + string(resource),
		endpoint: "admin.list",
		query: url.Values{
			"page":     {strconv.Itoa(page)},
			"pageSize": {strconv.Itoa(pageSize)},
		},
		token: token,
	}, &raw)
	if err != nil {
		return nil, err
	}

	items, err := decodeAdminItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: admin %s: %v", ErrInvalidResponse, resource, err)
	}
	return items, nil
}

func decodeAdminItems(raw json.RawMessage) ([]domain.AdminItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		items := make([]domain.AdminItem, 0)
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var page adminPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		return []domain.AdminItem{}, nil
	}
	return page.Items, nil
}

// AdminCreate создает элемент ресурса
func (c *Client) AdminCreate(ctx context.Context, token string, resource domain.AdminResource, item domain.AdminItem) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/admin/" + string(resource),
		endpoint: "admin.create",
		token:    token,
		body:     item,
	}, nil)
}

// AdminUpdate изменяет элемент ресурса
func (c *Client) AdminUpdate(ctx context.Context, token string, resource domain.AdminResource, id int64, item domain.AdminItem) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/admin/%s/%d", resource, id),
		endpoint: "admin.update",
		token:    token,
		body:     item,
	}, nil)
}

// AdminDelete удаляет элемент ресурса
func (c *Client) AdminDelete(ctx context.Context, token string, resource domain.AdminResource, id int64) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/admin/%s/%d", resource, id),
		endpoint: "admin.delete",
		token:    token,
	}, nil)
}
