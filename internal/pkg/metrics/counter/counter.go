package counter

import (
	"context"
	"strconv"

	"github.com/cartsetu/CartSetu/internal/pkg/cache"
)

const webhookOutcomesKey = "paymentsetu:counters:webhook_outcomes"

// AddWebhookOutcome increments the delivery counter for a reconciliation
// outcome in Redis. Counters are best-effort operational telemetry; callers
// log failures and move on.
func AddWebhookOutcome(outcome string) error {
	if outcome == "" {
		return nil
	}
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhookOutcomesKey, outcome, 1).Err()
}

// WebhookOutcomes returns the accumulated per-outcome delivery counts.
func WebhookOutcomes() (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, webhookOutcomesKey).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(data))
	for outcome, raw := range data {
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			continue
		}
		counts[outcome] = n
	}
	return counts, nil
}
