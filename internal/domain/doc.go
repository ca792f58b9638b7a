// Package domain contains the learner-facing entities of the service: users
// with their declared specialization and level, stored lessons, feedback on
// lessons and per-topic progress. Entities validate themselves and are
// independent of storage and transport.
package domain
