package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second, zerolog.Nop())
}

func TestClient_SendsBearerFromContext(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	ctx := WithBearer(context.Background(), "tok-123")
	if _, err := client.do(ctx, http.MethodGet, "test", "/x", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	if _, err := client.do(context.Background(), http.MethodGet, "test", "/x", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, zerolog.Nop())

	if _, err := client.do(context.Background(), http.MethodGet, "test", "/x", nil); err == nil {
		t.Fatalf("expected a transport error")
	}
}

func TestResponse_Message(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"json message field", `{"message":"Not enough stock"}`, "Not enough stock"},
		{"json error field", `{"error":"bad request"}`, "bad request"},
		{"message wins over error", `{"message":"m","error":"e"}`, "m"},
		{"plain text", "Service Unavailable\n", "Service Unavailable"},
		{"json without known fields", `{"detail":"x"}`, `{"detail":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &response{status: http.StatusBadRequest, body: []byte(tc.body)}
			if got := r.message(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResponse_ErrorMessageFallsBackToStatus(t *testing.T) {
	r := &response{status: http.StatusBadGateway, body: nil}
	if got := r.errorMessage(); got != "error 502: Bad Gateway" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestResponse_DecodeEmptyBody(t *testing.T) {
	r := &response{status: http.StatusOK, body: []byte("  \n")}
	var v struct{ X int }
	if err := r.decode(&v); err != nil {
		t.Fatalf("empty body must decode to zero value: %v", err)
	}
	if v.X != 0 {
		t.Fatalf("expected zero value, got %d", v.X)
	}
}

func TestFlexString(t *testing.T) {
	var record struct {
		ID flexString `json:"id"`
	}

	for raw, want := range map[string]string{
		`{"id":"abc"}`: "abc",
		`{"id":42}`:    "42",
		`{"id":null}`:  "",
	} {
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if string(record.ID) != want {
			t.Fatalf("%s: expected %q, got %q", raw, want, record.ID)
		}
	}
}
