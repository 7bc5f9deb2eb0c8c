package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsletter/pkg/domain"
	"newsletter/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/newsletters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestPublishIssue_Success(t *testing.T) {
	svc, router := newTestRouter(t)

	svc.EXPECT().PublishIssue(gomock.Any(), domain.Issue{
		Title:       "Issue #1",
		HTMLContent: "<p>hi</p>",
		TextContent: "hi",
	}).Return(5, nil)

	rec := postJSON(t, router, `{"title":"Issue #1","content":{"html":"<p>hi</p>","text":"hi"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"deliveries":5}`, rec.Body.String())
}

func TestPublishIssue_InvalidJSON(t *testing.T) {
	svc, router := newTestRouter(t)
	svc.EXPECT().PublishIssue(gomock.Any(), gomock.Any()).Times(0)

	rec := postJSON(t, router, `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishIssue_InvalidIssue(t *testing.T) {
	svc, router := newTestRouter(t)

	svc.EXPECT().PublishIssue(gomock.Any(), gomock.Any()).
		Return(0, serrors.With(serrors.ErrBadRequest, "issue title must not be empty"))

	rec := postJSON(t, router, `{"title":"","content":{"text":"hi"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishIssue_ServiceFailure(t *testing.T) {
	svc, router := newTestRouter(t)

	svc.EXPECT().PublishIssue(gomock.Any(), gomock.Any()).
		Return(0, serrors.With(serrors.ErrInternal, "could not fetch subscribers"))

	rec := postJSON(t, router, `{"title":"Issue #1","content":{"text":"hi"}}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}
