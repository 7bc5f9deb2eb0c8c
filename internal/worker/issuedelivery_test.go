package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"newsletter/internal/subscription"
	"newsletter/internal/worker"
	"newsletter/pkg/logger"
	"newsletter/pkg/mailer"
	mockmailer "newsletter/pkg/mailer/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, recipient string) *river.Job[subscription.IssueDeliveryArgs] {
	return &river.Job[subscription.IssueDeliveryArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args: subscription.IssueDeliveryArgs{
			IssueID:        uuid.New(),
			RecipientEmail: recipient,
			Title:          "Issue #1",
			HTMLContent:    "<p>hi</p>",
			TextContent:    "hi",
		},
	}
}

func TestIssueDeliveryWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mockmailer.NewMockSender(ctrl)
	w := worker.NewIssueDeliveryWorker(sender)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e mailer.Email) error {
			require.Equal(t, "ursula_le_guin@gmail.com", e.Recipient.String())
			require.Equal(t, "Issue #1", e.Subject)
			require.Equal(t, "<p>hi</p>", e.HTMLBody)
			require.Equal(t, "hi", e.TextBody)

			return nil
		},
	)

	require.NoError(t, w.Work(context.Background(), makeJob(1, "ursula_le_guin@gmail.com")))
}

func TestIssueDeliveryWorker_Work_InvalidRecipientCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mockmailer.NewMockSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
	w := worker.NewIssueDeliveryWorker(sender)

	err := w.Work(context.Background(), makeJob(2, "not-an-email"))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestIssueDeliveryWorker_Work_SendFailureRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mockmailer.NewMockSender(ctrl)
	w := worker.NewIssueDeliveryWorker(sender)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("provider down"))

	err := w.Work(context.Background(), makeJob(3, "ursula_le_guin@gmail.com"))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "send failures should be retried, not canceled")
}
