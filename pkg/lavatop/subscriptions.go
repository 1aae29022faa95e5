package lavatop

import (
	"context"
	"net/http"
	"net/url"
)

// CancelSubscription stops a recurring contract for the given buyer.
// The gate answers 2xx with an empty body; repeating the call is
// harmless from the caller's point of view.
func (c *Client) CancelSubscription(ctx context.Context, contractID, email string) error {
	if contractID == "" {
		return &ValidationError{Field: "contractId", Reason: "contract id is required"}
	}
	if email == "" {
		return &ValidationError{Field: "email", Reason: "buyer email is required"}
	}

	query := url.Values{}
	query.Set("contractId", contractID)
	query.Set("email", email)

	_, err := c.do(ctx, "CancelSubscription", http.MethodDelete, "/api/v1/subscriptions", query, nil)
	return err
}
