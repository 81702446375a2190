// Package classification predicts a category for new or relabelled tasks on
// lists that enable it. The remote model sits behind the Classifier
// interface; the prediction itself runs as a background job so list
// mutations never wait on it.
package classification
