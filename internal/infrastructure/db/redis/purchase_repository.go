package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/boleteria/storefront/internal/core/domain"
)

// PurchaseRepository keeps each user's purchase history as a Redis list of
// JSON records, newest last. Records are immutable once written.
type PurchaseRepository struct {
	client *redis.Client
}

func NewPurchaseRepository(client *redis.Client) *PurchaseRepository {
	return &PurchaseRepository{client: client}
}

// Append records the tickets produced by one checkout.
func (r *PurchaseRepository) Append(ctx context.Context, userID string, tickets []domain.PurchasedTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	values := make([]any, 0, len(tickets))
	for _, ticket := range tickets {
		raw, err := json.Marshal(ticket)
		if err != nil {
			return fmt.Errorf("marshal purchase: %w", err)
		}
		values = append(values, raw)
	}
	return r.client.RPush(ctx, r.key(userID), values...).Err()
}

// ListByUser returns the user's full purchase history in purchase order.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.PurchasedTicket, error) {
	raw, err := r.client.LRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}

	tickets := make([]domain.PurchasedTicket, 0, len(raw))
	for _, item := range raw {
		var ticket domain.PurchasedTicket
		if err := json.Unmarshal([]byte(item), &ticket); err != nil {
			return nil, fmt.Errorf("decode purchase: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (r *PurchaseRepository) key(userID string) string {
	return "purchases:" + userID
}
