package lavatop

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// saleDateFormat is the fixed timestamp layout for date-range filters:
// local time with an explicit zone offset.
const saleDateFormat = "2006-01-02T15:04:05-07:00"

// CurrencySales aggregates sales of one product in one currency.
type CurrencySales struct {
	Currency    Currency `json:"currency"`
	Count       int      `json:"count"`
	AmountTotal int      `json:"amountTotal"`
}

// SaleSummary is the per-product row of the partner sales report, with
// one CurrencySales entry per currency the product sold in.
type SaleSummary struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Status    ContractStatus  `json:"status"`
	Sales     []CurrencySales `json:"sales"`
}

// SalesReport is a page of per-product summaries.
type SalesReport struct {
	Items      []SaleSummary `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"totalPages"`
}

// Page counters (total, size, totalPages) are reported by the gate and
// passed through as-is; only per-item required fields are enforced.
func (r *SalesReport) validate() error {
	for i := range r.Items {
		item := &r.Items[i]
		if item.ProductID == "" {
			return &ValidationError{Field: "productId", Reason: "sale summary product id is required"}
		}
		if item.Title == "" {
			return &ValidationError{Field: "title", Reason: "sale summary title is required"}
		}
		if item.Status == "" {
			return &ValidationError{Field: "status", Reason: "sale summary status is required"}
		}
		for j := range item.Sales {
			if item.Sales[j].Currency == "" {
				return &ValidationError{Field: "currency", Reason: "sale entry currency is required"}
			}
		}
	}
	return nil
}

// SaleDetail is one individual sale of a product.
type SaleDetail struct {
	ID          string         `json:"id"`
	Created     time.Time      `json:"created"`
	Status      ContractStatus `json:"status"`
	AmountTotal Amount         `json:"amountTotal"`
	Buyer       Buyer          `json:"buyer"`
}

// ProductSalesPage is a page of individual sales for one product.
type ProductSalesPage struct {
	Items      []SaleDetail `json:"items"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"totalPages"`
}

func (p *ProductSalesPage) validate() error {
	for i := range p.Items {
		item := &p.Items[i]
		if item.ID == "" {
			return &ValidationError{Field: "id", Reason: "sale id is required"}
		}
		if item.Status == "" {
			return &ValidationError{Field: "status", Reason: "sale status is required"}
		}
		if item.AmountTotal.Currency == "" {
			return &ValidationError{Field: "amountTotal", Reason: "sale total with currency is required"}
		}
		if item.Buyer.Email == "" {
			return &ValidationError{Field: "buyer", Reason: "buyer email is required"}
		}
	}
	return nil
}

// PageOptions selects a report page. Nil fields are not sent, leaving
// the gate's defaults in force.
type PageOptions struct {
	Page *int
	Size *int
}

func (o *PageOptions) apply(query url.Values) {
	if o == nil {
		return
	}
	if o.Page != nil {
		query.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		query.Set("size", strconv.Itoa(*o.Size))
	}
}

// ProductSalesOptions filters the per-product sales listing. Zero
// values are not sent.
type ProductSalesOptions struct {
	PageOptions
	From     *time.Time
	To       *time.Time
	Currency Currency
	Status   ContractStatus
	Search   string
}

func (o *ProductSalesOptions) validate() error {
	if o == nil {
		return nil
	}
	if o.Currency != "" && !o.Currency.IsValid() {
		return &ValidationError{Field: "currency", Reason: "unknown literal " + string(o.Currency)}
	}
	if o.Status != "" && !o.Status.IsValid() {
		return &ValidationError{Field: "status", Reason: "unknown literal " + string(o.Status)}
	}
	return nil
}

// GetSales lists aggregated sales across all of the partner's products.
func (c *Client) GetSales(ctx context.Context, opts *PageOptions) (*SalesReport, error) {
	query := url.Values{}
	opts.apply(query)

	body, err := c.do(ctx, "GetSales", http.MethodGet, "/api/v1/sales", query, nil)
	if err != nil {
		return nil, err
	}

	var report SalesReport
	if err := decodeJSON(body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetProductSales lists individual sales of one product, optionally
// filtered by date range, currency, status and a search string.
func (c *Client) GetProductSales(ctx context.Context, productID string, opts *ProductSalesOptions) (*ProductSalesPage, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Reason: "product id is required"}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if opts != nil {
		opts.PageOptions.apply(query)
		if opts.From != nil {
			query.Set("fromDate", opts.From.Format(saleDateFormat))
		}
		if opts.To != nil {
			query.Set("toDate", opts.To.Format(saleDateFormat))
		}
		if opts.Currency != "" {
			query.Set("currency", string(opts.Currency))
		}
		if opts.Status != "" {
			query.Set("status", string(opts.Status))
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}

	body, err := c.do(ctx, "GetProductSales", http.MethodGet, "/api/v1/sales/"+productID, query, nil)
	if err != nil {
		return nil, err
	}

	var page ProductSalesPage
	if err := decodeJSON(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
