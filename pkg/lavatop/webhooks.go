package lavatop

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// WebhookAuthConfig is the auth data the partner's receiving endpoint
// expects from the gate. AuthValue is required unless AuthType is
// WebhookAuthNone.
type WebhookAuthConfig struct {
	AuthType  WebhookAuthType `json:"authType"`
	AuthValue string          `json:"authValue,omitempty"`
}

func (a *WebhookAuthConfig) validate() error {
	if !a.AuthType.IsValid() {
		return &ValidationError{Field: "authType", Reason: "unknown literal " + string(a.AuthType)}
	}
	if a.AuthType != WebhookAuthNone && a.AuthValue == "" {
		return &ValidationError{Field: "authValue", Reason: "auth value is required unless authType is none"}
	}
	return nil
}

// Webhook is a registered callback endpoint.
type Webhook struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	APIKeyID  string           `json:"apiKeyId"`
	URL       string           `json:"url"`
	EventType WebhookEventType `json:"eventType"`
	IsActive  bool             `json:"isActive"`
	AuthType  WebhookAuthType  `json:"authType"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

func (w *Webhook) validate() error {
	switch {
	case w.ID == "":
		return &ValidationError{Field: "id", Reason: "webhook id is required"}
	case w.Name == "":
		return &ValidationError{Field: "name", Reason: "webhook name is required"}
	case w.APIKeyID == "":
		return &ValidationError{Field: "apiKeyId", Reason: "api key id is required"}
	case w.URL == "":
		return &ValidationError{Field: "url", Reason: "webhook url is required"}
	case w.EventType == "":
		return &ValidationError{Field: "eventType", Reason: "event type is required"}
	case w.AuthType == "":
		return &ValidationError{Field: "authType", Reason: "auth type is required"}
	}
	return nil
}

// CreateWebhookRequest registers a new callback endpoint. AuthConfig
// is optional and omitted from the wire when nil.
type CreateWebhookRequest struct {
	URL        string             `json:"url"`
	Name       string             `json:"name"`
	APIKeyID   string             `json:"apiKeyId"`
	EventType  WebhookEventType   `json:"eventType"`
	AuthConfig *WebhookAuthConfig `json:"authConfig,omitempty"`
}

func (r *CreateWebhookRequest) validate() error {
	switch {
	case r.URL == "":
		return &ValidationError{Field: "url", Reason: "webhook url is required"}
	case r.Name == "":
		return &ValidationError{Field: "name", Reason: "webhook name is required"}
	case r.APIKeyID == "":
		return &ValidationError{Field: "apiKeyId", Reason: "api key id is required"}
	case !r.EventType.IsValid():
		return &ValidationError{Field: "eventType", Reason: "unknown literal " + string(r.EventType)}
	}
	if r.AuthConfig != nil {
		return r.AuthConfig.validate()
	}
	return nil
}

// UpdateWebhookRequest replaces a webhook's settings.
//
// This is a full-replace update: fields left nil are still serialized
// as explicit nulls, mirroring the gate's contract. Callers updating a
// single field must pass the current values of the others or the gate
// will clear them. AuthConfig is the one exception and is omitted when
// nil.
type UpdateWebhookRequest struct {
	URL        *string            `json:"url"`
	IsActive   *bool              `json:"isActive"`
	Name       *string            `json:"name"`
	EventType  *WebhookEventType  `json:"eventType"`
	AuthConfig *WebhookAuthConfig `json:"authConfig,omitempty"`
}

func (r *UpdateWebhookRequest) validate() error {
	if r.EventType != nil && !r.EventType.IsValid() {
		return &ValidationError{Field: "eventType", Reason: "unknown literal " + string(*r.EventType)}
	}
	if r.AuthConfig != nil {
		return r.AuthConfig.validate()
	}
	return nil
}

// WebhookDelivery is one attempted notification push.
type WebhookDelivery struct {
	ID             string     `json:"id"`
	WebhookID      string     `json:"webhookId"`
	IsDelivered    bool       `json:"isDelivered"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	LastAttemptAt  *time.Time `json:"lastDeliveryAttemptAt,omitempty"`
	ResponseStatus *int       `json:"responseStatus,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// WebhookHistoryPage is a page of delivery attempts.
type WebhookHistoryPage struct {
	Items []WebhookDelivery `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

func (p *WebhookHistoryPage) validate() error {
	for i := range p.Items {
		if p.Items[i].ID == "" {
			return &ValidationError{Field: "id", Reason: "delivery id is required"}
		}
		if p.Items[i].WebhookID == "" {
			return &ValidationError{Field: "webhookId", Reason: "delivery webhook id is required"}
		}
	}
	return nil
}

// CreateWebhook registers a callback endpoint.
func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "CreateWebhook", http.MethodPost, "/api/v1/webhooks", nil, &req)
	if err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := decodeJSON(body, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// GetWebhooks lists the partner's registered webhooks.
func (c *Client) GetWebhooks(ctx context.Context) ([]Webhook, error) {
	body, err := c.do(ctx, "GetWebhooks", http.MethodGet, "/api/v1/webhooks", nil, nil)
	if err != nil {
		return nil, err
	}

	var webhooks []Webhook
	if err := decodeJSON(body, &webhooks); err != nil {
		return nil, err
	}
	for i := range webhooks {
		if err := webhooks[i].validate(); err != nil {
			return nil, err
		}
	}
	return webhooks, nil
}

// UpdateWebhook replaces a webhook's settings (see UpdateWebhookRequest
// for the full-replace semantics).
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, req UpdateWebhookRequest) (*Webhook, error) {
	if webhookID == "" {
		return nil, &ValidationError{Field: "webhookId", Reason: "webhook id is required"}
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "UpdateWebhook", http.MethodPut, "/api/v1/webhooks/"+webhookID, nil, &req)
	if err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := decodeJSON(body, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// DeleteWebhook removes a registered webhook.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	if webhookID == "" {
		return &ValidationError{Field: "webhookId", Reason: "webhook id is required"}
	}

	_, err := c.do(ctx, "DeleteWebhook", http.MethodDelete, "/api/v1/webhooks/"+webhookID, nil, nil)
	return err
}

// GetWebhookHistory pages through delivery attempts across all of the
// partner's webhooks.
func (c *Client) GetWebhookHistory(ctx context.Context, opts *PageOptions) (*WebhookHistoryPage, error) {
	query := url.Values{}
	opts.apply(query)

	body, err := c.do(ctx, "GetWebhookHistory", http.MethodGet, "/api/v1/webhook-history", query, nil)
	if err != nil {
		return nil, err
	}

	var page WebhookHistoryPage
	if err := decodeJSON(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
