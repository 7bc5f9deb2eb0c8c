package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// SubscriberID uniquely identifies a persisted subscriber.
// It wraps uuid.UUID to provide type safety at the domain layer.
type SubscriberID uuid.UUID

// MaxNameGraphemes is the maximum display-name length, counted in grapheme
// clusters rather than bytes or runes so that combining sequences count once.
const MaxNameGraphemes = 256

// forbiddenNameCharacters are rejected anywhere in a subscriber name.
const forbiddenNameCharacters = `/()"<>\{}`

// SubscriberEmail is a syntactically valid email address. The zero value is
// not valid; instances exist only through ParseSubscriberEmail, so any live
// value already passed validation.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw as an email address and returns it as a
// SubscriberEmail. The accepted grammar is the permissive real-world variant:
// exactly one "@", a non-empty local part and domain, and no whitespace
// anywhere in the string.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if !isValidEmail(raw) {
		return SubscriberEmail{}, fmt.Errorf("%q is not a valid subscriber email.", raw) //nolint: staticcheck
	}

	return SubscriberEmail{value: raw}, nil
}

// String returns the validated address.
func (e SubscriberEmail) String() string { return e.value }

// IsZero reports whether e is the zero (never-parsed) value.
func (e SubscriberEmail) IsZero() bool { return e.value == "" }

func isValidEmail(raw string) bool {
	if strings.Count(raw, "@") != 1 {
		return false
	}
	if strings.IndexFunc(raw, unicode.IsSpace) != -1 {
		return false
	}
	local, dom, _ := strings.Cut(raw, "@")

	return local != "" && dom != ""
}

// SubscriberName is a validated display name. Instances exist only through
// ParseSubscriberName. The stored value is the original, untrimmed input:
// trimming is used for the emptiness check only, never to mutate the name.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw as a display name. It rejects names that
// are empty after trimming surrounding whitespace, longer than
// MaxNameGraphemes grapheme clusters, or containing a forbidden character.
// Callers get a single rejection regardless of how many rules were violated.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if !isValidName(raw) {
		return SubscriberName{}, fmt.Errorf("%q is not a valid subscriber name.", raw) //nolint: staticcheck
	}

	return SubscriberName{value: raw}, nil
}

// String returns the validated name, whitespace and all.
func (n SubscriberName) String() string { return n.value }

// IsZero reports whether n is the zero (never-parsed) value.
func (n SubscriberName) IsZero() bool { return n.value == "" }

func isValidName(raw string) bool {
	emptyOrWhitespace := strings.TrimSpace(raw) == ""
	tooLong := uniseg.GraphemeClusterCount(raw) > MaxNameGraphemes
	forbidden := strings.ContainsAny(raw, forbiddenNameCharacters)

	return !(emptyOrWhitespace || tooLong || forbidden)
}

// NewSubscriber pairs a validated email and name. It is the only form in
// which a subscription request exists past the input boundary; there is no
// way to assemble one from unvalidated parts.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

// NewSubscriberFromForm builds a NewSubscriber from raw form fields. The
// email is parsed before the name and the first failure is returned alone;
// this ordering is a deliberate contract relied on by callers and tests.
func NewSubscriberFromForm(rawEmail, rawName string) (NewSubscriber, error) {
	email, err := ParseSubscriberEmail(rawEmail)
	if err != nil {
		return NewSubscriber{}, err
	}
	name, err := ParseSubscriberName(rawName)
	if err != nil {
		return NewSubscriber{}, err
	}

	return NewSubscriber{Email: email, Name: name}, nil
}

// Subscriber is a persisted subscription record as stored by the repository.
type Subscriber struct {
	// ID is the unique identifier generated at acceptance.
	ID SubscriberID `json:"id"`
	// Email is the validated email string.
	Email string `json:"email"`
	// Name is the validated display name string.
	Name string `json:"name"`
	// SubscribedAt is the UTC timestamp captured at the moment of acceptance.
	SubscribedAt time.Time `json:"subscribedAt"`
}
