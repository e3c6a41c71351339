package paperless

import "context"

type Tag struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	Color         string `json:"color,omitempty"`
	IsInboxTag    bool   `json:"is_inbox_tag,omitempty"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// TagFields is used for both create and partial update; nil fields are
// not sent.
type TagFields struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsInboxTag *bool   `json:"is_inbox_tag,omitempty"`
}

func (c *Client) ListTags(ctx context.Context, page, pageSize int) (*Paginated[Tag], error) {
	return listPage[Tag](c, ctx, "/api/tags/", pageQuery(page, pageSize))
}

func (c *Client) GetTag(ctx context.Context, id int) (*Tag, error) {
	return getOne[Tag](c, ctx, entityPath("tags", id))
}

func (c *Client) CreateTag(ctx context.Context, f TagFields) (*Tag, error) {
	return createOne[Tag](c, ctx, "/api/tags/", f)
}

func (c *Client) UpdateTag(ctx context.Context, id int, f TagFields) (*Tag, error) {
	return updateOne[Tag](c, ctx, entityPath("tags", id), f)
}

func (c *Client) DeleteTag(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("tags", id))
}
