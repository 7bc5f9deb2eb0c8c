package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsletter/internal/config"
	"newsletter/pkg/domain"
	"newsletter/pkg/logger"
	"newsletter/pkg/mailer"
	"newsletter/pkg/serrors"
	"newsletter/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure subscription handling and issue delivery fan-out.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxDeliveryAttempts is the attempt budget the background worker gets for
	// one issue delivery before marking it failed.
	MaxDeliveryAttempts int
	// FanoutPageSize is how many subscribers are loaded per storage page while
	// fanning out an issue.
	FanoutPageSize uint
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxDeliveryAttempts: cfg.Newsletter.MaxDeliveryAttempts,
		FanoutPageSize:      cfg.Newsletter.FanoutPageSize,
	}
}

// service is the concrete implementation of the Service interface. It
// coordinates validation, persistence and outbound email.
type service struct {
	options Options
	// storage is the persistence layer used to store subscribers and enqueue jobs.
	storage storage.Storage
	// mailer sends the confirmation email. It may be nil in deployments
	// without an email provider; Subscribe then skips dispatch entirely.
	mailer mailer.Sender
}

// Subscribe turns a raw form submission into a persisted subscriber.
//
// The pipeline is strictly ordered: validation happens before any I/O, a
// storage failure prevents dispatch, and a dispatch failure is logged but
// never propagated because the subscriber is already persisted.
func (s service) Subscribe(ctx context.Context, rawEmail, rawName string) (*domain.Subscriber, error) {
	sub, err := domain.NewSubscriberFromForm(rawEmail, rawName)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid subscription form")
	}

	stored, err := s.storage.StoreSubscriber(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("could not store subscriber: %w", err)
	}

	logger.Info(ctx, "new subscriber saved",
		zap.String("subscriberEmail", stored.Email),
		zap.String("subscriberName", stored.Name))

	if s.mailer != nil {
		// best effort: one attempt, failure logged and swallowed
		if err := s.mailer.Send(ctx, confirmationEmail(sub)); err != nil {
			logger.Error(ctx, "could not send confirmation email",
				zap.String("subscriberEmail", stored.Email),
				zap.Error(err))
		}
	}

	return stored, nil
}

// confirmationEmail builds the welcome message for a newly accepted subscriber.
func confirmationEmail(sub domain.NewSubscriber) mailer.Email {
	return mailer.Email{
		Recipient: sub.Email,
		Subject:   "Welcome to our newsletter!",
		HTMLBody: fmt.Sprintf("<p>Welcome, %s!</p><p>Your subscription has been registered.</p>",
			strings.TrimSpace(sub.Name.String())),
		TextBody: fmt.Sprintf("Welcome, %s!\nYour subscription has been registered.",
			strings.TrimSpace(sub.Name.String())),
	}
}

// PublishIssue pages through all persisted subscribers and enqueues one
// delivery job per recipient. Already-enqueued (issue, recipient) pairs are
// skipped by the queue's uniqueness constraint and not counted.
func (s service) PublishIssue(ctx context.Context, issue domain.Issue) (int, error) {
	if strings.TrimSpace(issue.Title) == "" {
		return 0, serrors.With(serrors.ErrBadRequest, "issue title must not be empty")
	}
	if issue.HTMLContent == "" && issue.TextContent == "" {
		return 0, serrors.With(serrors.ErrBadRequest, "issue must have an HTML or text body")
	}

	issueID := uuid.New()
	ctx = logger.WithFields(ctx, zap.String("issueId", issueID.String()))

	var (
		enqueued int
		cursor   time.Time
	)
	for {
		page, err := s.storage.Subscribers(ctx, cursor, s.options.FanoutPageSize)
		if err != nil {
			return enqueued, fmt.Errorf("could not fetch subscribers: %w", err)
		}

		for _, sub := range page.Subscribers {
			added, err := s.storage.AddJob(ctx, IssueDeliveryArgs{
				IssueID:        issueID,
				RecipientEmail: sub.Email,
				Title:          issue.Title,
				HTMLContent:    issue.HTMLContent,
				TextContent:    issue.TextContent,
				maxAttempts:    s.options.MaxDeliveryAttempts,
			}, nil)
			if err != nil {
				return enqueued, fmt.Errorf("could not add delivery job: %w", err)
			}
			if added {
				enqueued++
			}
		}

		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}

	logger.Info(ctx, "issue published", zap.Int("deliveries", enqueued))

	return enqueued, nil
}

// New creates a new Service backed by the provided storage and mailer. The
// mailer may be nil when the deployment has no email provider configured.
func New(storage storage.Storage, sender mailer.Sender, options Options) Service {
	return &service{
		options: options,
		storage: storage,
		mailer:  sender,
	}
}
