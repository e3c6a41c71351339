package paperless

import "context"

type StoragePath struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	Path          string `json:"path"`
	DocumentCount int    `json:"document_count,omitempty"`
}

type StoragePathFields struct {
	Name *string `json:"name,omitempty"`
	Path *string `json:"path,omitempty"`
}

func (c *Client) ListStoragePaths(ctx context.Context, page, pageSize int) (*Paginated[StoragePath], error) {
	return listPage[StoragePath](c, ctx, "/api/storage_paths/", pageQuery(page, pageSize))
}

func (c *Client) GetStoragePath(ctx context.Context, id int) (*StoragePath, error) {
	return getOne[StoragePath](c, ctx, entityPath("storage_paths", id))
}

func (c *Client) CreateStoragePath(ctx context.Context, f StoragePathFields) (*StoragePath, error) {
	return createOne[StoragePath](c, ctx, "/api/storage_paths/", f)
}

func (c *Client) UpdateStoragePath(ctx context.Context, id int, f StoragePathFields) (*StoragePath, error) {
	return updateOne[StoragePath](c, ctx, entityPath("storage_paths", id), f)
}

func (c *Client) DeleteStoragePath(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("storage_paths", id))
}
