package lavatop

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAllConfiguredCredentialsAreSent(t *testing.T) {
	var (
		gotAPIKey string
		gotAuth   []string
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotAuth = r.Header.Values("Authorization")
		io.WriteString(w, `{}`)
	},
		WithAPIKey("key-123"),
		WithBearerToken("tok-456"),
		WithBasicAuth("user", "pass"),
	)

	if _, err := client.GetDonateLink(testContext(t)); err != nil {
		t.Fatalf("GetDonateLink: %v", err)
	}

	if gotAPIKey != "key-123" {
		t.Errorf("X-Api-Key = %q, want key-123", gotAPIKey)
	}

	var hasBearer, hasBasic bool
	for _, v := range gotAuth {
		if v == "Bearer tok-456" {
			hasBearer = true
		}
		if strings.HasPrefix(v, "Basic ") {
			hasBasic = true
		}
	}
	if !hasBearer {
		t.Errorf("Authorization values %v missing bearer token", gotAuth)
	}
	if !hasBasic {
		t.Errorf("Authorization values %v missing basic credentials", gotAuth)
	}
}

func TestNoCredentialHeadersWhenUnset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "" {
			t.Error("X-Api-Key sent on credential-less client")
		}
		if len(r.Header.Values("Authorization")) != 0 {
			t.Errorf("Authorization = %v, want none", r.Header.Values("Authorization"))
		}
		io.WriteString(w, `{}`)
	})

	if _, err := client.GetDonateLink(testContext(t)); err != nil {
		t.Fatalf("GetDonateLink: %v", err)
	}
}

// Two clients with different credentials issuing requests concurrently
// must never leak each other's headers: the client holds no mutable
// per-call state.
func TestConcurrentClientsDoNotShareCredentials(t *testing.T) {
	makeServer := func(wantKey string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-Api-Key"); got != wantKey {
				t.Errorf("X-Api-Key = %q, want %q", got, wantKey)
			}
			io.WriteString(w, `{}`)
		}))
	}

	serverA := makeServer("key-a")
	defer serverA.Close()
	serverB := makeServer("key-b")
	defer serverB.Close()

	clientA, err := New(WithBaseURL(serverA.URL), WithAPIKey("key-a"))
	if err != nil {
		t.Fatalf("New A: %v", err)
	}
	clientB, err := New(WithBaseURL(serverB.URL), WithAPIKey("key-b"))
	if err != nil {
		t.Fatalf("New B: %v", err)
	}

	ctx := testContext(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := clientA.GetDonateLink(ctx); err != nil {
				t.Errorf("client A: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := clientB.GetDonateLink(ctx); err != nil {
				t.Errorf("client B: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listens anymore

	client, err := New(WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.GetDonateLink(testContext(t))

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}

	var serr *HTTPStatusError
	if errors.As(err, &serr) {
		t.Error("connection failure surfaced as HTTPStatusError")
	}
}

func TestCancellationSurfacesThroughTransportError(t *testing.T) {
	started := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.GetDonateLink(ctx)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false, err = %v", err)
	}
}

func TestTimeoutSurfacesThroughTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetDonateLink(ctx)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("errors.Is(err, context.DeadlineExceeded) = false, err = %v", err)
	}
}

func TestRateLimitedClientStillDelivers(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, `{}`)
	}, WithRateLimit(100, 1))

	ctx := testContext(t)
	for i := 0; i < 3; i++ {
		if _, err := client.GetDonateLink(ctx); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if requests != 3 {
		t.Errorf("server saw %d requests, want 3", requests)
	}
}

func TestNewRejectsUnparsableBaseURL(t *testing.T) {
	if _, err := New(WithBaseURL("://bad")); err == nil {
		t.Fatal("New accepted unparsable base URL")
	}
}
