// Package gemini adapts Google's Gemini API to the lesson.Provider boundary.
//
// Provider sends one system instruction and one user message per call and
// returns the reply text. SDK and HTTP failures are translated into the
// lesson package's sentinel errors so the generator can log a stable reason
// before serving fallback content. The adapter never retries.
package gemini
