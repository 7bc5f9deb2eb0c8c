package subscription

import (
	"context"

	"newsletter/pkg/domain"
)

// Service orchestrates the subscription pipeline: raw input in, persisted
// subscribers and queued deliveries out.
//
//go:generate mockgen -package mocksubscription -source=interface.go -destination=mock/mocksubscription.go *
type Service interface {
	// Subscribe validates the raw form fields, persists the subscriber and
	// makes one best-effort attempt to send a confirmation email. Validation
	// failures return serrors.ErrBadRequest; nothing downstream sees
	// unvalidated data.
	Subscribe(ctx context.Context, rawEmail, rawName string) (*domain.Subscriber, error)
	// PublishIssue enqueues one delivery job per persisted subscriber for the
	// given issue and returns the number of deliveries enqueued.
	PublishIssue(ctx context.Context, issue domain.Issue) (int, error)
}
