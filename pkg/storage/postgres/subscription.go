package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsletter/pkg/domain"
	"newsletter/pkg/serrors"
	"newsletter/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	subscriptionsTable = "subscriptions"
)

// StoreSubscriber inserts a validated subscriber and returns the stored row.
// A duplicate email surfaces as a serrors.ErrConflict so callers can log the
// cause precisely; it is still an infrastructure failure from the ingestion
// caller's point of view.
func (p *PgSQL) StoreSubscriber(ctx context.Context, sub domain.NewSubscriber) (*domain.Subscriber, error) {
	var row PgSubscriber
	row.FromDomain(sub)

	var result PgSubscriber
	found, err := p.Builder.Insert(subscriptionsTable).
		Rows(row).
		Returning(&PgSubscriber{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, serrors.Wrap(serrors.ErrConflict, err, "email already subscribed")
		}

		return nil, fmt.Errorf("could not store subscriber into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert into %s returned no row", subscriptionsTable)
	}

	return result.ToDomain(), nil
}

// Subscribers returns a page of subscribers subscribed before the optional
// cursor, ordered by subscribed_at DESC, id DESC. A next cursor is returned
// when more rows remain.
func (p *PgSQL) Subscribers(ctx context.Context, cursor time.Time, limit uint) (storage.SubscriberPage, error) {
	var w []goqu.Expression
	if !cursor.IsZero() {
		w = append(w, goqu.I("subscribed_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(subscriptionsTable).
		Where(w...).
		Order(goqu.I("subscribed_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgSubscriber
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.SubscriberPage{}, fmt.Errorf("could not fetch subscribers from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].SubscribedAt
		rows = trimmed
	}

	return storage.SubscriberPage{
		Subscribers: pgSubscribersToDomain(rows),
		NextCursor:  nextCursor,
	}, nil
}

// SubscriberByEmail fetches a subscriber by email. Returns nil when not found.
func (p *PgSQL) SubscriberByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	var row PgSubscriber
	found, err := p.Builder.From(subscriptionsTable).
		Where(goqu.I("email").Eq(email)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch subscriber by email: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// SubscriberCount returns the total number of stored subscribers.
func (p *PgSQL) SubscriberCount(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(subscriptionsTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count subscribers in pg: %w", err)
	}

	return count, nil
}
