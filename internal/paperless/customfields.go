package paperless

import "context"

type CustomField struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

type CustomFieldFields struct {
	Name     *string `json:"name,omitempty"`
	DataType *string `json:"data_type,omitempty"`
}

func (c *Client) ListCustomFields(ctx context.Context, page, pageSize int) (*Paginated[CustomField], error) {
	return listPage[CustomField](c, ctx, "/api/custom_fields/", pageQuery(page, pageSize))
}

func (c *Client) GetCustomField(ctx context.Context, id int) (*CustomField, error) {
	return getOne[CustomField](c, ctx, entityPath("custom_fields", id))
}

func (c *Client) CreateCustomField(ctx context.Context, f CustomFieldFields) (*CustomField, error) {
	return createOne[CustomField](c, ctx, "/api/custom_fields/", f)
}

func (c *Client) UpdateCustomField(ctx context.Context, id int, f CustomFieldFields) (*CustomField, error) {
	return updateOne[CustomField](c, ctx, entityPath("custom_fields", id), f)
}

func (c *Client) DeleteCustomField(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("custom_fields", id))
}
