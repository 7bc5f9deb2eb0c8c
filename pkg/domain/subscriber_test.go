package domain_test

import (
	"strings"
	"testing"

	"newsletter/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestParseSubscriberEmail_Valid(t *testing.T) {
	for _, raw := range []string{
		"ursula_le_guin@gmail.com",
		"a@b.com",
		"a@b",
		"weird+tag@sub.domain.example",
	} {
		email, err := domain.ParseSubscriberEmail(raw)
		require.NoError(t, err, "rejected a valid email %q", raw)
		require.Equal(t, raw, email.String())
	}
}

func TestParseSubscriberEmail_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"missing at", "ursulagmail.com"},
		{"two ats", "ursula@le@guin.com"},
		{"missing local part", "@gmail.com"},
		{"missing domain", "ursula@"},
		{"embedded space", "ursula le guin@gmail.com"},
		{"embedded tab", "ursula\t@gmail.com"},
		{"trailing newline", "ursula@gmail.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseSubscriberEmail(tt.raw)
			require.Error(t, err, "didn't reject the invalid email %q", tt.raw)
			require.Contains(t, err.Error(), "is not a valid subscriber email")
		})
	}
}

func TestParseSubscriberName_Valid(t *testing.T) {
	for _, raw := range []string{
		"John",
		"John Doe",
		"  \t \n  John  \t \n  Doe \t \n  ",
		"å",
		". , ? ! : ; - _",
	} {
		name, err := domain.ParseSubscriberName(raw)
		require.NoError(t, err, "rejected a valid name %q", raw)
		// The untrimmed original survives unchanged.
		require.Equal(t, raw, name.String())
	}
}

func TestParseSubscriberName_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"single space", " "},
		{"whitespace only", " \t \r \n   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseSubscriberName(tt.raw)
			require.Error(t, err, "didn't reject the invalid name %q", tt.raw)
			require.Contains(t, err.Error(), "is not a valid subscriber name")
		})
	}
}

func TestParseSubscriberName_ForbiddenCharacters(t *testing.T) {
	for _, c := range []string{`/`, `(`, `)`, `"`, `<`, `>`, `\`, `{`, `}`} {
		_, err := domain.ParseSubscriberName("John " + c + " Doe")
		require.Error(t, err, "didn't reject a name containing %q", c)
	}
}

func TestParseSubscriberName_GraphemeBoundary(t *testing.T) {
	// "a" + combining ring is two runes but one grapheme cluster; exactly
	// 256 of them must pass while 257 plain characters must not.
	atMax := strings.Repeat("å", domain.MaxNameGraphemes)
	name, err := domain.ParseSubscriberName(atMax)
	require.NoError(t, err)
	require.Equal(t, atMax, name.String())

	tooLong := strings.Repeat("a", domain.MaxNameGraphemes+1)
	_, err = domain.ParseSubscriberName(tooLong)
	require.Error(t, err)
}

func TestNewSubscriberFromForm_RoundTrip(t *testing.T) {
	sub, err := domain.NewSubscriberFromForm("ursula_le_guin@gmail.com", "le guin")
	require.NoError(t, err)
	require.Equal(t, "ursula_le_guin@gmail.com", sub.Email.String())
	require.Equal(t, "le guin", sub.Name.String())
}

func TestNewSubscriberFromForm_EmailCheckedFirst(t *testing.T) {
	// Both fields invalid: the email error masks the name error.
	_, err := domain.NewSubscriberFromForm("not-an-email", "<script>")
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not a valid subscriber email")

	_, err = domain.NewSubscriberFromForm("ok@example.com", "<script>")
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not a valid subscriber name")
}

func TestNewSubscriberFromForm_NoPartialConstruction(t *testing.T) {
	sub, err := domain.NewSubscriberFromForm("ok@example.com", "")
	require.Error(t, err)
	require.True(t, sub.Email.IsZero())
	require.True(t, sub.Name.IsZero())
}
