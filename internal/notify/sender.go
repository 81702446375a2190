package notify

import (
	"context"
	"errors"
)

// MaxBatchSize is the most messages the push backend accepts per call.
const MaxBatchSize = 500

// FailureCode classifies the outcome of one message.
type FailureCode int

const (
	// FailureNone means the message was accepted.
	FailureNone FailureCode = iota
	// FailureUnregistered means the token no longer belongs to an app install.
	FailureUnregistered
	// FailureInvalidArgument means the token (or message) was rejected as malformed.
	FailureInvalidArgument
	// FailureOther covers quota, availability and internal backend errors.
	FailureOther
)

// String returns a log-friendly name.
func (c FailureCode) String() string {
	switch c {
	case FailureNone:
		return "none"
	case FailureUnregistered:
		return "unregistered"
	case FailureInvalidArgument:
		return "invalid_argument"
	default:
		return "other"
	}
}

// Permanent reports whether the token must be removed.
func (c FailureCode) Permanent() bool {
	return c == FailureUnregistered || c == FailureInvalidArgument
}

// SendResult is the outcome of one message in a batch.
type SendResult struct {
	Failure FailureCode
	Err     error
}

// ErrResultCount is returned when a sender reports a different number of
// results than messages it was given.
var ErrResultCount = errors.New("push backend returned wrong number of results")

// Sender delivers one batch of at most MaxBatchSize messages. The returned
// slice holds one result per message, in order. An error means the whole
// call failed and no per-message outcome is known.
type Sender interface {
	SendBatch(ctx context.Context, msgs []Message) ([]SendResult, error)
}
