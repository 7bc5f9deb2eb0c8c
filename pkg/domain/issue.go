package domain

// Issue is a newsletter issue to be delivered to every persisted subscriber.
type Issue struct {
	// Title becomes the subject line of each delivery.
	Title string `json:"title"`
	// HTMLContent is the HTML body of the issue.
	HTMLContent string `json:"htmlContent"`
	// TextContent is the plain-text body of the issue.
	TextContent string `json:"textContent"`
}
