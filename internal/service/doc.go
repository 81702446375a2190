// Package service contains the use cases of shared task lists. It
// orchestrates domain objects and the store contracts (internal/store) to
// fulfill the HTTP API and the periodic sweeps.
//
// Key components:
//
// 1. MembershipGate:
//   - Authorizes list operations (access, ownership, not-owner)
//   - Issues, previews and redeems invite tokens
//
// 2. OrdinalSequencer:
//   - Moves one item of an ordered collection with a single bounded-range
//     shift, serialized per collection
//
// 3. ListService, TaskService, PushTokenService:
//   - Apply mutations inside a transaction and emit action events only
//     after the transaction commits
//
// 4. TokenExpirySweeper:
//   - Garbage-collects expired verification, reset and invite tokens
//
// Errors returned by services are domain errors (see domain.KindOf) for
// expected conditions and *ServiceError for everything else.
package service
