// Package lesson contains the lesson generation core: the prompt composer,
// the response parser, the fallback content catalog and the Generator that
// ties them to an external language-model Provider.
//
// The Generator contract is total. GenerateLesson and
// GenerateAlternativeExplanation always return usable content; provider
// failures are logged and replaced with catalog or template content, and the
// returned Provenance tells the caller which path produced the result.
package lesson
