package classification

import (
	"context"
	"errors"
)

// Common errors returned by classifiers.
var (
	// ErrNoCategory is returned when the model produced no usable category.
	ErrNoCategory = errors.New("classifier returned no category")

	// ErrInvalidResponse is returned when the classifier reply cannot be parsed.
	ErrInvalidResponse = errors.New("invalid response from classifier")

	// ErrUnavailable is returned when the classifier cannot be reached or
	// reports a failure status.
	ErrUnavailable = errors.New("classifier unavailable")

	// ErrInvalidConfig is returned when a classifier is misconfigured.
	ErrInvalidConfig = errors.New("invalid classifier configuration")
)

// Classifier maps a task label to a category name.
type Classifier interface {
	Classify(ctx context.Context, label string) (string, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, label string) (string, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, label string) (string, error) {
	return f(ctx, label)
}
