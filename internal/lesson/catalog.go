package lesson

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is a read-only collection of pre-authored lessons keyed by
// specialization and level. It is safe for concurrent use.
type Catalog struct {
	leveled map[string]map[string][]CatalogEntry
	flat    map[string][]CatalogEntry
}

type catalogDocument struct {
	Specializations map[string]specializationDocument `yaml:"specializations"`
}

type specializationDocument struct {
	// Levels maps a level name to its lessons.
	Levels map[string][]CatalogEntry `yaml:"levels"`
	// Lessons is a level-independent list. A specialization uses one form or the other.
	Lessons []CatalogEntry `yaml:"lessons"`
}

// DefaultCatalog decodes the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// MustDefaultCatalog is like DefaultCatalog but panics on error. The embedded
// document is validated by tests, so a failure here is a build defect.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		leveled: make(map[string]map[string][]CatalogEntry),
		flat:    make(map[string][]CatalogEntry),
	}

	for spec, sd := range doc.Specializations {
		if len(sd.Levels) > 0 && len(sd.Lessons) > 0 {
			return nil, fmt.Errorf("%w: specialization %q has both levels and lessons", ErrInvalidCatalog, spec)
		}
		if len(sd.Lessons) > 0 {
			if err := validateEntries(spec, "", sd.Lessons); err != nil {
				return nil, err
			}
			c.flat[spec] = trimEntries(sd.Lessons)
			continue
		}
		levels := make(map[string][]CatalogEntry, len(sd.Levels))
		for level, entries := range sd.Levels {
			if err := validateEntries(spec, level, entries); err != nil {
				return nil, err
			}
			levels[level] = trimEntries(entries)
		}
		c.leveled[spec] = levels
	}

	if len(c.leveled[SpecializationTheory][LevelBeginner]) == 0 {
		return nil, fmt.Errorf("%w: %s/%s must not be empty", ErrInvalidCatalog, SpecializationTheory, LevelBeginner)
	}

	return c, nil
}

func validateEntries(spec, level string, entries []CatalogEntry) error {
	where := spec
	if level != "" {
		where = spec + "/" + level
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s has no lessons", ErrInvalidCatalog, where)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("%w: %s entry %d has no title", ErrInvalidCatalog, where, i)
		}
		if strings.TrimSpace(e.Content) == "" {
			return fmt.Errorf("%w: %s entry %d has no content", ErrInvalidCatalog, where, i)
		}
	}
	return nil
}

// trimEntries drops the trailing newline YAML block scalars leave behind.
func trimEntries(entries []CatalogEntry) []CatalogEntry {
	out := make([]CatalogEntry, len(entries))
	for i, e := range entries {
		out[i] = CatalogEntry{
			Title:    strings.TrimSpace(e.Title),
			Content:  strings.TrimSpace(e.Content),
			Exercise: strings.TrimSpace(e.Exercise),
		}
	}
	return out
}

// Lookup returns the lessons for a specialization and level. It never returns
// an empty slice:
//
//   - a flat specialization (Hybrid) ignores level
//   - a missing level falls back to the specialization's Beginner lessons
//   - an unknown specialization, or one without Beginner lessons, falls back
//     to Theory/Beginner
//
// The returned slice is a copy and may be modified by the caller.
func (c *Catalog) Lookup(specialization, level string) []CatalogEntry {
	if entries, ok := c.flat[specialization]; ok {
		return slices.Clone(entries)
	}
	if levels, ok := c.leveled[specialization]; ok {
		if entries := levels[level]; len(entries) > 0 {
			return slices.Clone(entries)
		}
		if entries := levels[LevelBeginner]; len(entries) > 0 {
			return slices.Clone(entries)
		}
	}
	return slices.Clone(c.leveled[SpecializationTheory][LevelBeginner])
}

// Size reports the total number of lessons in the catalog.
func (c *Catalog) Size() int {
	n := 0
	for _, entries := range c.flat {
		n += len(entries)
	}
	for _, levels := range c.leveled {
		for _, entries := range levels {
			n += len(entries)
		}
	}
	return n
}

// PickRandom returns one of entries chosen uniformly at random. It returns the
// zero entry when entries is empty; Lookup never produces such a slice.
func PickRandom(entries []CatalogEntry) CatalogEntry {
	if len(entries) == 0 {
		return CatalogEntry{}
	}
	return entries[rand.IntN(len(entries))]
}
