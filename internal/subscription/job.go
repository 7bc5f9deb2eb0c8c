package subscription

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// IssueDeliveryArgs contains the arguments for one issue delivery submitted
// to River. The (issue, recipient) pair is the unique key so a re-published
// issue never produces duplicate deliveries to the same address.
type IssueDeliveryArgs struct {
	// IssueID identifies the published issue this delivery belongs to.
	IssueID uuid.UUID `json:"issueId" river:"unique"`
	// RecipientEmail is the validated address of the subscriber, carried as a
	// string over the queue and re-parsed by the worker before dispatch.
	RecipientEmail string `json:"recipientEmail" river:"unique"`

	// Title becomes the subject line of the delivery.
	Title string `json:"title"`
	// HTMLContent is the HTML body of the issue.
	HTMLContent string `json:"htmlContent"`
	// TextContent is the plain-text body of the issue.
	TextContent string `json:"textContent"`

	// maxAttempts configures how many times River should try the delivery.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the delivery worker.
func (args IssueDeliveryArgs) Kind() string { return "IssueDeliveryJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// including the attempt budget and uniqueness constraints preventing duplicate
// deliveries of the same issue to the same recipient.
func (args IssueDeliveryArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		// one delivery per (issue, recipient) in any state
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
