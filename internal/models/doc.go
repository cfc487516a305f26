// Package models defines the core domain types for the dollarcard service.
//
// There are only two of them:
//   - Card: an owned monetary record, the unit of storage
//   - User / Principal: a bootstrap identity with a single Role
//
// Ownership is a flat 1:1 relation between a Card and a username. It is set
// when a card is created and never reassigned, which is what makes the
// owner-scoped queries in the storage layer sufficient as an access control:
// there is no sharing or delegation to model.
package models
