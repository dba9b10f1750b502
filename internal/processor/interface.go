package processor

import (
	"context"
)

// ReconcileRequester schedules a durable rebuild of an encounter's
// progression. The inngest client satisfies it.
type ReconcileRequester interface {
	RequestReconcile(ctx context.Context, encounterID, reason string) error
}
