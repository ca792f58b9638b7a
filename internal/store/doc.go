// Package store defines the persistence interfaces for users, lessons,
// feedback and progress, the errors they return and the transaction helper
// services use to group several store calls atomically.
package store
