package lavatop

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/samber/lo"
)

// FeedItemType tags the two variants a feed element can decode to.
type FeedItemType string

const (
	FeedItemProduct FeedItemType = "PRODUCT"
	FeedItemPost    FeedItemType = "POST"
)

// Price is one amount an offer can be purchased for. Amount is null
// for free offers.
type Price struct {
	Amount   *float64 `json:"amount"`
	Currency Currency `json:"currency"`
}

// Offer is a purchasable price option under a product. Its ID is what
// CreateInvoice takes as the offer identifier.
type Offer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Prices      []Price `json:"prices"`
}

func (o *Offer) validate() error {
	if o.ID == "" {
		return &ValidationError{Field: "id", Reason: "offer id is required"}
	}
	return nil
}

// Product is a sellable item in the feed.
type Product struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Type        ProductType `json:"type"`
	Offers      []Offer     `json:"offers,omitempty"`
}

func (p *Product) validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Reason: "product id is required"}
	}
	for i := range p.Offers {
		if err := p.Offers[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// Post is an editorial feed item (lesson or plain post).
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Body        string     `json:"body"`
	Type        PostType   `json:"type"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (p *Post) validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Reason: "post id is required"}
	}
	if p.Title == "" {
		return &ValidationError{Field: "title", Reason: "post title is required"}
	}
	if p.Body == "" {
		return &ValidationError{Field: "body", Reason: "post body is required"}
	}
	if p.Type == "" {
		return &ValidationError{Field: "type", Reason: "post type is required"}
	}
	return nil
}

// FeedItem is the Product|Post union. Exactly one variant pointer is
// set; Type says which.
type FeedItem struct {
	Type    FeedItemType
	Product *Product
	Post    *Post
}

func (i *FeedItem) UnmarshalJSON(b []byte) error {
	kind, err := classifyFeedItem(b)
	if err != nil {
		return &DecodingError{Err: err}
	}

	switch kind {
	case FeedItemPost:
		var post Post
		if err := json.Unmarshal(b, &post); err != nil {
			return err
		}
		if err := post.validate(); err != nil {
			return err
		}
		*i = FeedItem{Type: FeedItemPost, Post: &post}
	default:
		var product Product
		if err := json.Unmarshal(b, &product); err != nil {
			return err
		}
		if err := product.validate(); err != nil {
			return err
		}
		*i = FeedItem{Type: FeedItemProduct, Product: &product}
	}
	return nil
}

func (i FeedItem) MarshalJSON() ([]byte, error) {
	switch i.Type {
	case FeedItemPost:
		return json.Marshal(i.Post)
	case FeedItemProduct:
		return json.Marshal(i.Product)
	}
	return nil, errors.Errorf("feed item has no variant set")
}

// classifyFeedItem decides which variant a raw feed element is.
//
// The two shapes overlap on id, title and description, so matching is
// post-first: an object is a POST when it carries a "body" key and its
// "type" is in the post vocabulary; everything else is treated as a
// PRODUCT (whose own type vocabulary is enforced during decoding).
// Product-first would be ambiguous because every post also looks like
// a product with an unknown type.
func classifyFeedItem(raw []byte) (FeedItemType, error) {
	var (
		hasBody  bool
		typeName string
	)

	d := jx.DecodeBytes(raw)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "body":
			hasBody = true
			return d.Skip()
		case "type":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "type")
			}
			typeName = s
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return "", errors.Wrap(err, "feed item is not an object")
	}

	if hasBody && PostType(typeName).IsValid() {
		return FeedItemPost, nil
	}
	return FeedItemProduct, nil
}

// FeedPage is one page of the mixed product/post feed. NextPage, when
// present, is an opaque link to the next page.
type FeedPage struct {
	Items    []FeedItem `json:"items"`
	NextPage *string    `json:"nextPage,omitempty"`
}

// Products returns the product variants of the page, in feed order.
func (p FeedPage) Products() []Product {
	return lo.FilterMap(p.Items, func(item FeedItem, _ int) (Product, bool) {
		if item.Type != FeedItemProduct {
			return Product{}, false
		}
		return *item.Product, true
	})
}

// Posts returns the post variants of the page, in feed order.
func (p FeedPage) Posts() []Post {
	return lo.FilterMap(p.Items, func(item FeedItem, _ int) (Post, bool) {
		if item.Type != FeedItemPost {
			return Post{}, false
		}
		return *item.Post, true
	})
}
