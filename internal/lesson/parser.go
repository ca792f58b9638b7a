package lesson

import "strings"

const (
	titleMarker    = "TITLE:"
	contentMarker  = "CONTENT:"
	exerciseMarker = "EXERCISE:"
)

// parseState is the section a reply line is currently being accumulated into.
type parseState int

const (
	// stateTitleSeeking is the initial state. Lines seen here belong to the
	// content section.
	stateTitleSeeking parseState = iota
	stateContentAccumulating
	stateExerciseAccumulating
)

func (s parseState) String() string {
	switch s {
	case stateTitleSeeking:
		return "title_seeking"
	case stateContentAccumulating:
		return "content_accumulating"
	case stateExerciseAccumulating:
		return "exercise_accumulating"
	default:
		return "unknown"
	}
}

// parser holds the machine's working memory.
type parser struct {
	state    parseState
	buf      []string
	title    string
	content  string
	exercise string
}

// step applies one trimmed line to the machine.
func (p *parser) step(line string) {
	switch {
	case strings.HasPrefix(line, titleMarker):
		p.title = strings.TrimSpace(strings.TrimPrefix(line, titleMarker))
	case strings.HasPrefix(line, contentMarker):
		p.buf = p.buf[:0]
		p.state = stateContentAccumulating
		p.appendInline(strings.TrimPrefix(line, contentMarker))
	case strings.HasPrefix(line, exerciseMarker):
		p.content = joinLines(p.buf)
		p.buf = p.buf[:0]
		p.state = stateExerciseAccumulating
		p.appendInline(strings.TrimPrefix(line, exerciseMarker))
	default:
		p.buf = append(p.buf, line)
	}
}

// appendInline keeps text written on the same line as a section marker.
func (p *parser) appendInline(rest string) {
	if rest = strings.TrimSpace(rest); rest != "" {
		p.buf = append(p.buf, rest)
	}
}

// flush stores the buffer in the section the machine ended in.
func (p *parser) flush() {
	if p.state == stateExerciseAccumulating {
		p.exercise = joinLines(p.buf)
		return
	}
	p.content = joinLines(p.buf)
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Parse splits a provider reply into a Record using the TITLE:, CONTENT: and
// EXERCISE: markers. Markers are matched case-sensitively at the start of a
// trimmed line; a marker in the middle of a line is plain text. Parse never
// fails: a reply without markers becomes the content of a lesson titled
// DefaultTitle, and an empty content section falls back to the raw reply.
func Parse(raw string) Record {
	p := &parser{state: stateTitleSeeking}
	for _, line := range strings.Split(raw, "\n") {
		p.step(strings.TrimSpace(line))
	}
	p.flush()

	rec := Record{
		Title:    p.title,
		Content:  p.content,
		Exercise: p.exercise,
	}
	if rec.Title == "" {
		rec.Title = DefaultTitle
	}
	if rec.Content == "" {
		rec.Content = raw
	}
	return rec
}
