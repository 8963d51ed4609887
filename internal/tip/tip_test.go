package tip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchDecodesZenquotesPayload(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"q":"Learning never exhausts the mind.","a":"Leonardo da Vinci"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	got := c.Fetch(context.Background())

	if got.Text != "Learning never exhausts the mind." {
		t.Fatalf("unexpected tip text: %q", got.Text)
	}
	if got.Author != "Leonardo da Vinci" {
		t.Fatalf("unexpected tip author: %q", got.Author)
	}
}

func TestFetchFallsBack(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}},
		{"empty array", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tc.handler)
			t.Cleanup(srv.Close)

			got := NewClient(srv.URL, time.Second).Fetch(context.Background())
			if !isFallback(got.Text) {
				t.Fatalf("expected a fallback tip, got %q", got.Text)
			}
		})
	}
}

func TestFetchFallsBackOnUnreachableHost(t *testing.T) {
	t.Parallel()
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	got := c.Fetch(context.Background())
	if !isFallback(got.Text) {
		t.Fatalf("expected a fallback tip, got %q", got.Text)
	}
}

func isFallback(text string) bool {
	for _, tip := range fallbackTips {
		if tip == text {
			return true
		}
	}
	return false
}
