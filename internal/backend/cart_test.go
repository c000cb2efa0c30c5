package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
)

func TestCartAdapter_GetCart_BareArray(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/cart" || r.URL.Query().Get("user_id") != "u1" {
			t.Fatalf("unexpected request: %s", r.URL.String())
		}
		w.Write([]byte(`[{"ticket_stock_id":5,"quantity":2},{"ticket_stock_id":"7","quantity":1}]`))
	}))

	snapshot, err := adapter.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].TicketStockID != "5" || snapshot.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", snapshot.Lines[0])
	}
	if !snapshot.ExpiresAt.IsZero() {
		t.Fatalf("no expiry was communicated, got %v", snapshot.ExpiresAt)
	}
}

func TestCartAdapter_GetCart_Envelope(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"ticket_stock_id":"5","quantity":2}],"expires_at":"2025-06-01T12:15:00Z"}`))
	}))

	snapshot, err := adapter.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	want := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	if !snapshot.ExpiresAt.Equal(want) {
		t.Fatalf("expected envelope expiry %v, got %v", want, snapshot.ExpiresAt)
	}
}

func TestCartAdapter_GetCart_EarliestLineExpiryWins(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"ticket_stock_id":"1","quantity":1,"expires_at":"2025-06-01T12:20:00Z"},
			{"ticket_stock_id":"2","quantity":1,"expires_at":"2025-06-01T12:05:00Z"}
		]`))
	}))

	snapshot, err := adapter.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	if !snapshot.ExpiresAt.Equal(want) {
		t.Fatalf("expected earliest expiry %v, got %v", want, snapshot.ExpiresAt)
	}
}

func TestCartAdapter_GetCart_EmptyBody(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	snapshot, err := adapter.GetCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty snapshot, got %d lines", len(snapshot.Lines))
	}
}

func TestCartAdapter_AddItem_Payload(t *testing.T) {
	var payload map[string]any
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := adapter.AddItem(context.Background(), "u1", "ts5", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["user_id"] != "u1" || payload["ticket_stock_id"] != "ts5" || payload["quantity"] != float64(3) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestCartAdapter_AddItem_BackendRejection(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Not enough stock"}`))
	}))

	err := adapter.AddItem(context.Background(), "u1", "ts5", 99)
	var cartErr *domain.CartError
	if !errors.As(err, &cartErr) {
		t.Fatalf("expected CartError, got %v", err)
	}
	if cartErr.Message != "Not enough stock" {
		t.Fatalf("backend message must surface verbatim, got %q", cartErr.Message)
	}
}

func TestCartAdapter_Checkout_Payload(t *testing.T) {
	var payload map[string]any
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/checkout" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := adapter.Checkout(context.Background(), "u1", "Ada Lovelace", "ada@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["buyer_fullname"] != "Ada Lovelace" || payload["buyer_email"] != "ada@example.com" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestCartAdapter_RemoveItem_BackendRejection(t *testing.T) {
	adapter := NewCartAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("line not in cart"))
	}))

	err := adapter.RemoveItem(context.Background(), "u1", "ts5")
	var cartErr *domain.CartError
	if !errors.As(err, &cartErr) {
		t.Fatalf("expected CartError, got %v", err)
	}
}
