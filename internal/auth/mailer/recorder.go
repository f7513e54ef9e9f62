package mailer

import (
	"context"
	"sync"
)

// Recorder is a Sender test double that captures messages instead of
// delivering them. FailWith forces every Send to return that error.
type Recorder struct {
	mu       sync.Mutex
	sent     []Message
	FailWith error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of every captured message in send order.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

// Last returns the most recently captured message, or false if none.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sent) == 0 {
		return Message{}, false
	}
	return r.sent[len(r.sent)-1], true
}
