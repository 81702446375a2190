// Package mocks provides shared test doubles for the store, event and auth
// contracts, so service, notify and API tests use the same fakes.
//
// Store mocks are testify mocks: set expectations with On and verify them
// with AssertExpectations. Their WithTx* methods return the mock itself,
// which lets code under test run "inside" a transaction opened by
// Transactor without a database.
package mocks
