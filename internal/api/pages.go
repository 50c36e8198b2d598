package api

import (
	"context"

	"github.com/sonatafm/podium/internal/models"
)

// GetOne fetches a single entity from a detail endpoint.
func GetOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var entity T
	if err := c.Get(ctx, path, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetPage fetches one page of a list endpoint using the standard
// {count, next, previous, results} envelope.
func GetPage[T any](ctx context.Context, c *Client, path string, params map[string]string) (*models.Page[T], error) {
	var page models.Page[T]
	if err := c.Get(ctx, path+Query(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetLinkedPage fetches one page of a list endpoint using the richer
// {links, total_pages, count, results} wrapper.
func GetLinkedPage[T any](ctx context.Context, c *Client, path string, params map[string]string) (*models.LinkedPage[T], error) {
	var page models.LinkedPage[T]
	if err := c.Get(ctx, path+Query(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
