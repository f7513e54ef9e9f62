// Package mailer delivers transactional email for the auth service:
// signup verification codes and invitation links.
package mailer

import "context"

// Message is a fully composed outbound email. HTMLBody is optional; when
// set it is attached as a multipart alternative to the plain-text body.
type Message struct {
	To       string
	Subject  string
	Body     string
	HTMLBody string
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
