package storage

import (
	"context"
	"time"

	"newsletter/pkg/domain"
)

// SubscriberPage groups a page of subscribers together with an optional
// NextCursor used for pagination.
type SubscriberPage struct {
	// Subscribers contains the current page of subscriber records.
	Subscribers []domain.Subscriber
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// SubscriptionStorage defines persistence operations for subscribers.
// Implementations own identifier generation and the acceptance timestamp;
// callers hand over only validated domain values.
type SubscriptionStorage interface {
	// StoreSubscriber inserts a validated subscriber and returns the stored row
	// as it exists in the database, including the generated identifier and the
	// UTC acceptance timestamp.
	StoreSubscriber(ctx context.Context, sub domain.NewSubscriber) (*domain.Subscriber, error)
	// Subscribers returns a page of subscribers subscribed before the optional
	// cursor time, ordered newest first and limited by limit.
	Subscribers(ctx context.Context, cursor time.Time, limit uint) (SubscriberPage, error)
	// SubscriberByEmail fetches a subscriber by email. Returns nil when not found.
	SubscriberByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	// SubscriberCount returns the total number of stored subscribers.
	SubscriberCount(ctx context.Context) (int64, error)
}
