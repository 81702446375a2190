// Package gemini implements classification.Classifier with Google's Gemini
// models through the google.golang.org/genai client.
//
// The model is prompted with the task label and asked for a single short
// category name. Transient API failures are retried with exponential
// backoff and jitter; empty or safety-blocked answers are not retried.
package gemini
