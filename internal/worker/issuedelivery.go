package worker

import (
	"context"
	"fmt"

	"newsletter/internal/subscription"
	"newsletter/pkg/domain"
	"newsletter/pkg/logger"
	"newsletter/pkg/mailer"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// IssueDeliveryWorker is a River worker that delivers one newsletter issue to
// one recipient. Delivery failures are returned so River retries the job up to
// its attempt budget; a recipient address that no longer parses cancels the
// job since retrying cannot fix it.
type IssueDeliveryWorker struct {
	river.WorkerDefaults[subscription.IssueDeliveryArgs]

	// sender performs the actual provider call.
	sender mailer.Sender
}

// NewIssueDeliveryWorker constructs an IssueDeliveryWorker using the provided sender.
func NewIssueDeliveryWorker(sender mailer.Sender) *IssueDeliveryWorker {
	return &IssueDeliveryWorker{sender: sender}
}

// Work sends the issue carried by the job to its recipient.
func (w *IssueDeliveryWorker) Work(ctx context.Context, job *river.Job[subscription.IssueDeliveryArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("issueId", job.Args.IssueID.String()),
		zap.String("recipient", job.Args.RecipientEmail))

	recipient, err := domain.ParseSubscriberEmail(job.Args.RecipientEmail)
	if err != nil {
		logger.Error(ctx, "stored recipient address no longer parses", zap.Error(err))

		return river.JobCancel(err) //nolint: wrapcheck
	}

	err = w.sender.Send(ctx, mailer.Email{
		Recipient: recipient,
		Subject:   job.Args.Title,
		HTMLBody:  job.Args.HTMLContent,
		TextBody:  job.Args.TextContent,
	})
	if err != nil {
		logger.Error(ctx, "error delivering issue", zap.Error(err))

		return fmt.Errorf("could not deliver issue: %w", err)
	}

	logger.Info(ctx, "issue delivered")

	return nil
}
