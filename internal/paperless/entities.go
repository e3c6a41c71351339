package paperless

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Generic CRUD plumbing shared by every entity type. The backend exposes
// the same shape for all of them: GET/POST /api/{entity}/ and
// GET/PATCH/DELETE /api/{entity}/{id}/.

func entityPath(entity string, id int) string {
	return fmt.Sprintf("/api/%s/%d/", entity, id)
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

func listPage[T any](c *Client, ctx context.Context, path string, query url.Values) (*Paginated[T], error) {
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[Paginated[T]](resp)
}

func getOne[T any](c *Client, ctx context.Context, path string) (*T, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](resp)
}

func createOne[T any](c *Client, ctx context.Context, path string, body any) (*T, error) {
	resp, err := c.send(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](resp)
}

func updateOne[T any](c *Client, ctx context.Context, path string, body any) (*T, error) {
	resp, err := c.send(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](resp)
}

// deleteOne treats any 2xx, including 204 No Content, as logical success
// with no value.
func deleteOne(c *Client, ctx context.Context, path string) error {
	resp, err := c.send(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		resp.Body.Close()
		return nil
	}
	return apiErrorFrom(resp)
}
