// Package httpmail provides a mailer.Sender implementation backed by an
// HTTP transactional-email provider API.
package httpmail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsletter/pkg/domain"
	"newsletter/pkg/mailer"
	"newsletter/pkg/serrors"
)

// authTokenHeader carries the provider credential on every request.
const authTokenHeader = "X-Provider-Auth-Token" //nolint: gosec

// Client talks to the provider's REST API and fulfills the mailer.Sender
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client          // httpClient performs HTTP requests to the provider
	baseURL    string                // baseURL is the provider API root, without trailing slash
	sender     domain.SubscriberEmail // sender is the process-wide From address
	token      string                // token is the provider API credential, never logged
}

// sendEmailRequest is the provider's wire format for a send call.
type sendEmailRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}

// Send dispatches one email via POST {baseURL}/email. Any 2xx status counts
// as success; everything else, including transport failures, is returned as
// an error. Exactly one attempt is made and the configured client timeout is
// the only deadline beyond ctx.
func (c *Client) Send(ctx context.Context, email mailer.Email) error {
	bodyBytes, err := json.Marshal(sendEmailRequest{
		From:     c.sender.String(),
		To:       email.Recipient.String(),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.baseURL+"/email",
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authTokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("send failed with status %d: could not read response body: %w", resp.StatusCode, err)
		}

		return fmt.Errorf("send failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return nil
}

// Sender returns the process-wide From address the client was built with.
func (c *Client) Sender() domain.SubscriberEmail {
	return c.sender
}

// Ensure Client conforms to the mailer.Sender interface at compile time.
var _ mailer.Sender = (*Client)(nil)

// New constructs a Client that uses the provided http.Client (carrying the
// desired timeout), provider base URL, validated sender address and API token.
func New(httpClient *http.Client, baseURL string, sender domain.SubscriberEmail, token string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		sender:     sender,
		token:      token,
	}
}
