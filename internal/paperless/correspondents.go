package paperless

import "context"

type Correspondent struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug,omitempty"`
	DocumentCount      int    `json:"document_count,omitempty"`
	LastCorrespondence string `json:"last_correspondence,omitempty"`
}

type CorrespondentFields struct {
	Name *string `json:"name,omitempty"`
}

func (c *Client) ListCorrespondents(ctx context.Context, page, pageSize int) (*Paginated[Correspondent], error) {
	return listPage[Correspondent](c, ctx, "/api/correspondents/", pageQuery(page, pageSize))
}

func (c *Client) GetCorrespondent(ctx context.Context, id int) (*Correspondent, error) {
	return getOne[Correspondent](c, ctx, entityPath("correspondents", id))
}

func (c *Client) CreateCorrespondent(ctx context.Context, f CorrespondentFields) (*Correspondent, error) {
	return createOne[Correspondent](c, ctx, "/api/correspondents/", f)
}

func (c *Client) UpdateCorrespondent(ctx context.Context, id int, f CorrespondentFields) (*Correspondent, error) {
	return updateOne[Correspondent](c, ctx, entityPath("correspondents", id), f)
}

func (c *Client) DeleteCorrespondent(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("correspondents", id))
}
