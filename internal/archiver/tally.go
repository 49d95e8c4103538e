package archiver

import (
	"cmp"
	"slices"

	"github.com/azuyamat/mia/internal/filetype"
)

// Tally accumulates non-blank line counts per language. Lines of text files
// with no known language are kept under filetype.Unclassified, which is left
// out of Classified and Percent.
type Tally map[filetype.Language]int

// LanguageLines is one row of a sorted tally.
type LanguageLines struct {
	Language filetype.Language
	Lines    int
	Percent  float64
}

// Add records lines for lang.
func (t Tally) Add(lang filetype.Language, lines int) {
	t[lang] += lines
}

// Classified returns the line total over all known languages.
func (t Tally) Classified() int {
	total := 0
	for lang, lines := range t {
		if lang != filetype.Unclassified {
			total += lines
		}
	}
	return total
}

// Percent returns lang's share of the classified total, from 0 to 100.
// It is 0 for the unclassified sentinel and when nothing is classified.
func (t Tally) Percent(lang filetype.Language) float64 {
	if lang == filetype.Unclassified {
		return 0
	}
	total := t.Classified()
	if total == 0 {
		return 0
	}
	return float64(t[lang]) * 100 / float64(total)
}

// Sorted returns the classified languages by descending line count, ties
// broken by name.
func (t Tally) Sorted() []LanguageLines {
	total := t.Classified()
	rows := make([]LanguageLines, 0, len(t))
	for lang, lines := range t {
		if lang == filetype.Unclassified {
			continue
		}
		row := LanguageLines{Language: lang, Lines: lines}
		if total > 0 {
			row.Percent = float64(lines) * 100 / float64(total)
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b LanguageLines) int {
		if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})
	return rows
}
