// Package notify turns action events and due reminders into device push
// messages, sends them in bounded batches and prunes device tokens the push
// backend reports as permanently invalid.
//
// Delivery failures never reach the mutation that triggered them: they are
// logged, and permanent ones remove the token.
package notify
