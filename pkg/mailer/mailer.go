// Package mailer defines the outbound email contract used to notify
// subscribers through an HTTP-based transactional-email provider.
package mailer

import (
	"context"

	"newsletter/pkg/domain"
)

// Email is a single transactional message. Sender and recipient are validated
// domain values; a message is never dispatched with an unparsed address.
type Email struct {
	// Recipient is the validated destination address.
	Recipient domain.SubscriberEmail
	// Subject is the subject line.
	Subject string
	// HTMLBody is the HTML variant of the message body.
	HTMLBody string
	// TextBody is the plain-text variant of the message body.
	TextBody string
}

// Sender dispatches transactional emails. Implementations make exactly one
// attempt per call; retries, if any, are the caller's concern.
//
//go:generate mockgen -package mockmailer -source=mailer.go -destination=mock/mockmailer.go *
type Sender interface {
	// Send dispatches one email. Any non-success provider status or transport
	// failure is returned as an error carrying detail for logging only; the
	// error never contains the provider credential.
	Send(ctx context.Context, email Email) error
}
