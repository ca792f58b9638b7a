package lesson

// DefaultTitle is used when the provider reply carries no TITLE marker.
const DefaultTitle = "AI Lesson"

// Known specializations. The set is open: unknown values are accepted and
// treated as Hybrid by the prompt composer and as Theory by the catalog.
const (
	SpecializationTheory  = "Theory"
	SpecializationTooling = "Tooling"
	SpecializationHybrid  = "Hybrid"
)

// Known levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Record is a structured lesson as returned to callers of the Generator.
type Record struct {
	Title    string `json:"title"    yaml:"title"`
	Content  string `json:"content"  yaml:"content"`
	Exercise string `json:"exercise" yaml:"exercise"`
}

// CatalogEntry is a pre-authored lesson. It has the same shape as Record.
type CatalogEntry = Record

// Request describes the lesson a caller wants.
type Request struct {
	Specialization string
	Level          string
	// Topic is optional free text guiding generation.
	Topic string
	// PriorFeedback is an optional signal such as "confused" asking for an
	// alternative explanation instead of a fresh topic.
	PriorFeedback string
}

// Provenance records where a result came from.
type Provenance string

const (
	// ProvenanceGenerated marks content produced by the language model.
	ProvenanceGenerated Provenance = "generated"
	// ProvenanceFallback marks catalog or template content.
	ProvenanceFallback Provenance = "fallback"
)

// Result is the outcome of GenerateLesson.
type Result struct {
	Record     Record
	Provenance Provenance
}

// Explanation is the outcome of GenerateAlternativeExplanation.
type Explanation struct {
	Text       string
	Provenance Provenance
}
