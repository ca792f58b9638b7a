// Package service contains the learner-facing use cases: registering users,
// generating and storing lessons, reacting to feedback, completing lessons and
// keeping per-topic progress. It coordinates the lesson generator with the
// store interfaces and never depends on a concrete database.
package service
