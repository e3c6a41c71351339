package paperless

import "context"

type DocumentType struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	DocumentCount int    `json:"document_count,omitempty"`
}

type DocumentTypeFields struct {
	Name *string `json:"name,omitempty"`
}

func (c *Client) ListDocumentTypes(ctx context.Context, page, pageSize int) (*Paginated[DocumentType], error) {
	return listPage[DocumentType](c, ctx, "/api/document_types/", pageQuery(page, pageSize))
}

func (c *Client) GetDocumentType(ctx context.Context, id int) (*DocumentType, error) {
	return getOne[DocumentType](c, ctx, entityPath("document_types", id))
}

func (c *Client) CreateDocumentType(ctx context.Context, f DocumentTypeFields) (*DocumentType, error) {
	return createOne[DocumentType](c, ctx, "/api/document_types/", f)
}

func (c *Client) UpdateDocumentType(ctx context.Context, id int, f DocumentTypeFields) (*DocumentType, error) {
	return updateOne[DocumentType](c, ctx, entityPath("document_types", id), f)
}

func (c *Client) DeleteDocumentType(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("document_types", id))
}
