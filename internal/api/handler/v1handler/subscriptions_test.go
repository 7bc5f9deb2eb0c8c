package v1handler_test

import (
	"net/http"
	"testing"

	"newsletter/pkg/domain"
	"newsletter/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubscribe_ValidForm(t *testing.T) {
	svc, router := newTestRouter(t)

	svc.EXPECT().Subscribe(gomock.Any(), "ursula_le_guin@gmail.com", "le guin").
		Return(&domain.Subscriber{Email: "ursula_le_guin@gmail.com", Name: "le guin"}, nil)

	rec := doForm(t, router, "name=le%20guin&email=ursula_le_guin%40gmail.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestSubscribe_InvalidFields(t *testing.T) {
	svc, router := newTestRouter(t)

	cases := []struct {
		testName string
		body     string
		email    string
		name     string
	}{
		{"missing email", "name=le%20guin", "", "le guin"},
		{"missing name", "email=ursula_le_guin%40gmail.com", "ursula_le_guin@gmail.com", ""},
		{"missing both", "", "", ""},
		{"invalid email", "name=Ursula&email=definitely-not-an-email", "definitely-not-an-email", "Ursula"},
	}
	for _, tc := range cases {
		t.Run(tc.testName, func(t *testing.T) {
			svc.EXPECT().Subscribe(gomock.Any(), tc.email, tc.name).
				Return(nil, serrors.With(serrors.ErrBadRequest, "invalid subscription form"))

			rec := doForm(t, router, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Empty(t, rec.Body.String())
		})
	}
}

func TestSubscribe_StorageFailure(t *testing.T) {
	svc, router := newTestRouter(t)

	svc.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrInternal, "could not store subscriber"))

	rec := doForm(t, router, "name=le%20guin&email=ursula_le_guin%40gmail.com")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestSubscribe_MalformedBody(t *testing.T) {
	svc, router := newTestRouter(t)
	svc.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := doForm(t, router, "name=%zz")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
