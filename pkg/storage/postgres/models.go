package postgres

import (
	"time"

	"newsletter/pkg/domain"

	"github.com/google/uuid"
)

// PgSubscriber is the row shape of the subscriptions table. Generated columns
// carry goqu:"skipinsert" so the database owns identifiers and timestamps.
type PgSubscriber struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Email string `db:"email"`
	Name  string `db:"name"`

	SubscribedAt time.Time `db:"subscribed_at" goqu:"skipinsert"`
}

func (p *PgSubscriber) ToDomain() *domain.Subscriber {
	return &domain.Subscriber{
		ID:           domain.SubscriberID(p.ID),
		Email:        p.Email,
		Name:         p.Name,
		SubscribedAt: p.SubscribedAt,
	}
}

func (p *PgSubscriber) FromDomain(sub domain.NewSubscriber) {
	*p = PgSubscriber{
		Email: sub.Email.String(),
		Name:  sub.Name.String(),
	}
}

func pgSubscribersToDomain(rows []PgSubscriber) []domain.Subscriber {
	out := make([]domain.Subscriber, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out
}
