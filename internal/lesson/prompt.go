package lesson

import (
	"fmt"
	"strings"
)

const personaPrompt = `You are ProfeAI, an MIT-style AI professor with emotional intelligence.
You excel at teaching both AI theory and practical tooling with clarity and adaptability.

Your teaching style:
- Clear, concise explanations with concrete examples
- Use analogies when helpful
- Break complex concepts into digestible parts
- Provide practical applications
- Encourage experimentation and hands-on learning

`

const (
	theoryFocus = "Focus on AI fundamentals, algorithms, ML concepts, and mathematical foundations.\n" +
		"Use rigorous but accessible explanations with real-world analogies."
	toolingFocus = "Focus on hands-on AI development tools, coding practices, integrations,\n" +
		"and practical implementation. Include code examples and step-by-step guides."
	hybridFocus = "Combine theoretical understanding with practical application.\n" +
		"Explain the 'why' behind concepts and immediately show 'how' to implement them."
)

// StructureInstruction is appended to every lesson prompt so the reply can be
// split by Parse.
const StructureInstruction = "\n\nPlease structure your response as:\n" +
	"TITLE: [lesson title]\n" +
	"CONTENT: [lesson content]\n" +
	"EXERCISE: [optional practice exercise]"

// AlternativeSystemPrompt is the system instruction used when rephrasing an
// explanation the user struggled with.
const AlternativeSystemPrompt = "You are ProfeAI, an expert at explaining complex concepts in multiple ways. " +
	"Adapt your teaching style based on student feedback."

// SystemPrompt builds the system instruction for lesson generation. Only the
// exact values "Theory" and "Tooling" select their focus; anything else gets
// the Hybrid framing.
func SystemPrompt(specialization, level string) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	switch specialization {
	case SpecializationTheory:
		b.WriteString(theoryFocus)
	case SpecializationTooling:
		b.WriteString(toolingFocus)
	default:
		b.WriteString(hybridFocus)
	}
	fmt.Fprintf(&b, "\n\nUser level: %s. Adjust complexity accordingly.", level)
	return b.String()
}

// UserPrompt builds the user message for lesson generation. Prior feedback
// takes precedence over topic, which takes precedence over the
// specialization's generic request.
func UserPrompt(topic, priorFeedback, specialization string) string {
	var b strings.Builder
	switch {
	case priorFeedback != "":
		fmt.Fprintf(&b, "The user was %s with the previous explanation. Please provide an alternative explanation", priorFeedback)
		if topic != "" {
			fmt.Fprintf(&b, " for the topic: %s", topic)
		} else {
			b.WriteString(" of the previous explanation")
		}
		b.WriteString(". Use different analogies or examples to make it clearer.")
	case topic != "":
		fmt.Fprintf(&b, "Generate a lesson about: %s", topic)
	case specialization == SpecializationTheory:
		b.WriteString("Generate a lesson about a fundamental AI concept suitable for the user's level.")
	case specialization == SpecializationTooling:
		b.WriteString("Generate a hands-on lesson about an AI development tool or practical technique.")
	default:
		b.WriteString("Generate a lesson that combines AI theory with practical implementation.")
	}
	b.WriteString(StructureInstruction)
	return b.String()
}

// AlternativePrompt builds the user message asking the model to rephrase
// originalContent for a user who reported it as feedbackType.
func AlternativePrompt(originalContent, feedbackType string) string {
	return fmt.Sprintf(`The user found this explanation %s:

"%s"

Please provide an alternative explanation that is:
- Clearer and more accessible
- Uses different analogies or examples
- Breaks down complex parts further
- More engaging and practical

Keep the same core information but present it differently.`, feedbackType, originalContent)
}

// AlternativeTemplate is the canned rephrasing returned when the model cannot
// be used.
func AlternativeTemplate(originalContent string) string {
	return "Let me explain this differently:\n\n" + originalContent +
		"\n\nThink of it as a simple analogy - imagine you're explaining this concept to a friend " +
		"who's never heard of it before. The key idea is to break it down into smaller, more " +
		"digestible pieces and relate it to something familiar."
}
