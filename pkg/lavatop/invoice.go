package lavatop

import (
	"context"
	"net/http"
	"net/url"
)

// Invoice is a purchase contract. PaymentURL is empty only when the
// purchased offer is free.
type Invoice struct {
	ID          string         `json:"id"`
	Status      ContractStatus `json:"status"`
	AmountTotal Amount         `json:"amountTotal"`
	PaymentURL  string         `json:"paymentUrl,omitempty"`
}

func (i *Invoice) validate() error {
	if i.ID == "" {
		return &ValidationError{Field: "id", Reason: "invoice id is required"}
	}
	if i.Status == "" {
		return &ValidationError{Field: "status", Reason: "contract status is required"}
	}
	if i.AmountTotal.Currency == "" {
		return &ValidationError{Field: "amountTotal", Reason: "total amount with currency is required"}
	}
	return nil
}

// CreateInvoiceRequest describes a purchase of one offer.
// BuyerLanguage is optional and omitted from the wire when unset.
type CreateInvoiceRequest struct {
	Email         string        `json:"email"`
	OfferID       string        `json:"offerId"`
	Currency      Currency      `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BuyerLanguage Language      `json:"buyerLanguage,omitempty"`
}

func (r *CreateInvoiceRequest) validate() error {
	switch {
	case r.Email == "":
		return &ValidationError{Field: "email", Reason: "buyer email is required"}
	case r.OfferID == "":
		return &ValidationError{Field: "offerId", Reason: "offer id is required"}
	case !r.Currency.IsValid():
		return &ValidationError{Field: "currency", Reason: "unknown literal " + string(r.Currency)}
	case !r.PaymentMethod.IsValid():
		return &ValidationError{Field: "paymentMethod", Reason: "unknown literal " + string(r.PaymentMethod)}
	case r.BuyerLanguage != "" && !r.BuyerLanguage.IsValid():
		return &ValidationError{Field: "buyerLanguage", Reason: "unknown literal " + string(r.BuyerLanguage)}
	}
	return nil
}

// CreateInvoice opens a purchase contract for an offer and returns it
// together with the payment widget link.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "CreateInvoice", http.MethodPost, "/api/v2/invoice", nil, &req)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := decodeJSON(body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetInvoice fetches a contract by its identifier. The id travels as a
// query parameter, matching the gate's v1 endpoint.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	if invoiceID == "" {
		return nil, &ValidationError{Field: "id", Reason: "invoice id is required"}
	}

	query := url.Values{}
	query.Set("id", invoiceID)

	body, err := c.do(ctx, "GetInvoice", http.MethodGet, "/api/v1/invoice", query, nil)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := decodeJSON(body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
