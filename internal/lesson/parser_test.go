package lesson_test

import (
	"testing"

	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want lesson.Record
	}{
		{
			name: "all markers inline",
			raw:  "TITLE: X\nCONTENT: Y\nEXERCISE: Z",
			want: lesson.Record{Title: "X", Content: "Y", Exercise: "Z"},
		},
		{
			name: "multi-line sections",
			raw: "TITLE: Gradient Descent\n" +
				"CONTENT:\n" +
				"  Gradient descent walks downhill.  \n" +
				"\n" +
				"It repeats until the loss stops shrinking.\n" +
				"EXERCISE:\n" +
				"Minimize f(x) = x^2 by hand.\n",
			want: lesson.Record{
				Title:    "Gradient Descent",
				Content:  "Gradient descent walks downhill.\n\nIt repeats until the loss stops shrinking.",
				Exercise: "Minimize f(x) = x^2 by hand.",
			},
		},
		{
			name: "no markers",
			raw:  "Just some free text.",
			want: lesson.Record{Title: lesson.DefaultTitle, Content: "Just some free text.", Exercise: ""},
		},
		{
			name: "title only uses raw text as content",
			raw:  "TITLE: Lonely",
			want: lesson.Record{Title: "Lonely", Content: "TITLE: Lonely", Exercise: ""},
		},
		{
			name: "no exercise",
			raw:  "TITLE: Tokens\nCONTENT:\nText is split into tokens.",
			want: lesson.Record{Title: "Tokens", Content: "Text is split into tokens.", Exercise: ""},
		},
		{
			name: "text before content marker is discarded",
			raw:  "Sure! Here is your lesson.\nTITLE: T\nCONTENT:\nBody",
			want: lesson.Record{Title: "T", Content: "Body", Exercise: ""},
		},
		{
			name: "lines before any marker become content",
			raw:  "Body line one\nTITLE: T\nBody line two",
			want: lesson.Record{Title: "T", Content: "Body line one\nBody line two", Exercise: ""},
		},
		{
			name: "mid-line markers are plain text",
			raw:  "TITLE: T\nCONTENT:\nRemember the EXERCISE: part comes later\nand TITLE: too",
			want: lesson.Record{
				Title:    "T",
				Content:  "Remember the EXERCISE: part comes later\nand TITLE: too",
				Exercise: "",
			},
		},
		{
			name: "lowercase markers are plain text",
			raw:  "title: t\ncontent: c",
			want: lesson.Record{Title: lesson.DefaultTitle, Content: "title: t\ncontent: c", Exercise: ""},
		},
		{
			name: "indented markers are recognized",
			raw:  "   TITLE: Indented\n\tCONTENT: Body",
			want: lesson.Record{Title: "Indented", Content: "Body", Exercise: ""},
		},
		{
			name: "empty content before exercise falls back to raw",
			raw:  "TITLE: T\nEXERCISE: do it",
			want: lesson.Record{Title: "T", Content: "TITLE: T\nEXERCISE: do it", Exercise: "do it"},
		},
		{
			name: "blank title keeps default",
			raw:  "TITLE:   \nCONTENT: Body",
			want: lesson.Record{Title: lesson.DefaultTitle, Content: "Body", Exercise: ""},
		},
		{
			name: "later title wins",
			raw:  "TITLE: First\nTITLE: Second\nCONTENT: Body",
			want: lesson.Record{Title: "Second", Content: "Body", Exercise: ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, lesson.Parse(tc.raw))
		})
	}
}

func TestParse_NeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x",
		"CONTENT:",
		"EXERCISE:",
		"TITLE:\nCONTENT:\nEXERCISE:",
		"\n\n  \nsomething\n",
	}
	for _, raw := range inputs {
		rec := lesson.Parse(raw)
		assert.NotEmpty(t, rec.Title, "title for %q", raw)
		assert.NotEmpty(t, rec.Content, "content for %q", raw)
	}
}
