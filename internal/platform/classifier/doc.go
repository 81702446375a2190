// Package classifier is a websocket client for the remote task classification
// service. Each prediction opens a connection, sends the JSON-quoted label as
// one text frame and reads one JSON reply of the form
// {"status": <int>, "result": <string>}; status 0 means result is the category.
package classifier
