package lavatop

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestGetFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v2/products" {
			t.Fatalf("%s %s, want GET /api/v2/products", r.Method, r.URL.Path)
		}
		if len(r.URL.Query()) != 0 {
			t.Fatalf("query = %v, want empty without options", r.URL.Query())
		}
		io.WriteString(w, `{"items":[{"id":"p1","title":"Course","type":"COURSE"}]}`)
	})

	page, err := client.GetFeed(testContext(t), nil)
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Type != FeedItemProduct {
		t.Fatalf("page = %+v, want one product", page)
	}
	if page.NextPage != nil {
		t.Errorf("nextPage = %v, want nil on last page", page.NextPage)
	}
}

func TestGetFeedVisibilityFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("feedVisibility"); got != "ONLY_VISIBLE" {
			t.Fatalf("feedVisibility = %q, want ONLY_VISIBLE", got)
		}
		io.WriteString(w, `{"items":[]}`)
	})

	_, err := client.GetFeed(testContext(t), &FeedOptions{Visibility: FeedVisibilityOnlyVisible})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	_, err = client.GetFeed(testContext(t), &FeedOptions{Visibility: "SOMETIMES"})
	if err == nil {
		t.Fatal("unknown visibility accepted, want ValidationError")
	}
}

func TestUpdateProductPassesBodyThrough(t *testing.T) {
	var sentBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v2/products/p1" {
			t.Fatalf("%s %s, want PUT /api/v2/products/p1", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &sentBody)
		// the gate echoes an arbitrary shape; no schema is enforced
		io.WriteString(w, `{"id":"p1","title":"Renamed","unknownField":42}`)
	})

	result, err := client.UpdateProduct(testContext(t), "p1", map[string]any{"title": "Renamed"})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if sentBody["title"] != "Renamed" {
		t.Errorf("sent title = %v, want Renamed", sentBody["title"])
	}
	if result["unknownField"] != float64(42) {
		t.Errorf("result passthrough lost unknownField: %v", result)
	}
}

func TestCancelSubscription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/subscriptions" {
			t.Fatalf("%s %s, want DELETE /api/v1/subscriptions", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("contractId") != "c-1" || q.Get("email") != "buyer@example.com" {
			t.Fatalf("query = %v", q)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.CancelSubscription(testContext(t), "c-1", "buyer@example.com"); err != nil {
		t.Fatalf("CancelSubscription: %v", err)
	}

	if err := client.CancelSubscription(testContext(t), "", "buyer@example.com"); err == nil {
		t.Fatal("empty contract id accepted")
	}
}

func TestGetDonateLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/donate" {
			t.Fatalf("path = %s, want /api/v1/donate", r.URL.Path)
		}
		io.WriteString(w, `{"url":"https://lava.top/u/partner","extra":"kept"}`)
	})

	link, err := client.GetDonateLink(testContext(t))
	if err != nil {
		t.Fatalf("GetDonateLink: %v", err)
	}
	if link.URL() != "https://lava.top/u/partner" {
		t.Errorf("URL() = %q", link.URL())
	}
	if link["extra"] != "kept" {
		t.Errorf("provider-defined field dropped: %v", link)
	}
}
