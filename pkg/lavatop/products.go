package lavatop

import (
	"context"
	"net/http"
	"net/url"
)

// FeedOptions narrows the feed listing. Zero values are not sent.
type FeedOptions struct {
	Visibility FeedVisibility
}

// GetFeed lists the partner's products and posts as one mixed page.
// Pagination is cursor-style: follow FeedPage.NextPage when set.
func (c *Client) GetFeed(ctx context.Context, opts *FeedOptions) (*FeedPage, error) {
	query := url.Values{}
	if opts != nil && opts.Visibility != "" {
		if !opts.Visibility.IsValid() {
			return nil, &ValidationError{Field: "feedVisibility", Reason: "unknown literal " + string(opts.Visibility)}
		}
		query.Set("feedVisibility", string(opts.Visibility))
	}

	body, err := c.do(ctx, "GetFeed", http.MethodGet, "/api/v2/products", query, nil)
	if err != nil {
		return nil, err
	}

	var page FeedPage
	if err := decodeJSON(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GenericResponse is used where the gate does not fully define the
// response schema; it is passed through without validation.
type GenericResponse map[string]any

// UpdateProduct replaces product fields by raw mapping. The gate owns
// the schema here; the result is returned as-is.
func (c *Client) UpdateProduct(ctx context.Context, productID string, data map[string]any) (GenericResponse, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Reason: "product id is required"}
	}

	body, err := c.do(ctx, "UpdateProduct", http.MethodPut, "/api/v2/products/"+productID, nil, data)
	if err != nil {
		return nil, err
	}

	var result GenericResponse
	if err := decodeJSON(body, &result); err != nil {
		return nil, err
	}
	return result, nil
}
