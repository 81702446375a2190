// Package fcm delivers push messages through Firebase Cloud Messaging and
// maps its per-message errors onto notify failure codes. LogSender is a
// stand-in for local runs without Firebase credentials.
package fcm
