package lavatop

import (
	"context"
	"net/http"
)

// DonateLink is the partner's donation page reference. The gate does
// not fully document this shape, so it is kept as a raw mapping with an
// accessor for the link itself.
type DonateLink map[string]any

// URL returns the donation page link, or "" when absent.
func (d DonateLink) URL() string {
	s, _ := d["url"].(string)
	return s
}

// GetDonateLink fetches the partner's donation page reference.
func (c *Client) GetDonateLink(ctx context.Context) (DonateLink, error) {
	body, err := c.do(ctx, "GetDonateLink", http.MethodGet, "/api/v1/donate", nil, nil)
	if err != nil {
		return nil, err
	}

	var link DonateLink
	if err := decodeJSON(body, &link); err != nil {
		return nil, err
	}
	return link, nil
}
