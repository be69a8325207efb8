// Package catalog reads products and categories from the remote catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type Client struct {
	base    string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// Products calls GET /products.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.getJSON(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories calls GET /products/categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	a := fiber.Get(c.base + path)
	a.Timeout(timeout)
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("catalog GET %s: %w", path, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return fmt.Errorf("catalog GET %s: status %d", path, code)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.DecodeError{Key: path, Err: err}
	}
	return nil
}
