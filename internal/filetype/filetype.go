// Package filetype classifies files into coarse language tags and counts their
// non-blank lines.
package filetype

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Language is a coarse classification of a file's content.
type Language string

// Unclassified is the sentinel for extensions with no known language.
const Unclassified Language = "Unclassified"

// Languages known to the embedded table.
const (
	Rust       Language = "Rust"
	Python     Language = "Python"
	Java       Language = "Java"
	C          Language = "C"
	CPP        Language = "C++"
	JavaScript Language = "JavaScript"
	HTML       Language = "HTML"
	CSS        Language = "CSS"
	PHP        Language = "PHP"
	Swift      Language = "Swift"
	Ruby       Language = "Ruby"
	Go         Language = "Go"
	Kotlin     Language = "Kotlin"
	Scala      Language = "Scala"
	TypeScript Language = "TypeScript"
	Lua        Language = "Lua"
	Dart       Language = "Dart"
	Markdown   Language = "Markdown"
)

//go:embed languages.toml
var languagesTOML []byte

type languageEntry struct {
	Language   string   `toml:"language"`
	Extensions []string `toml:"extensions"`
}

type languageTable struct {
	Languages []languageEntry `toml:"languages"`
}

// catalog is the embedded table, parsed once.
type catalog struct {
	byExt map[string]Language
	order []Language
}

var embedded = sync.OnceValue(func() catalog {
	byExt, order, err := parseTable(languagesTOML)
	if err != nil {
		panic(err)
	}
	return catalog{byExt: byExt, order: order}
})

// parseTable decodes a languages table into an extension lookup map and the
// distinct languages in table order. The first language listing an extension
// wins.
func parseTable(data []byte) (map[string]Language, []Language, error) {
	var t languageTable
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, nil, fmt.Errorf("failed to parse languages table; %w", err)
	}

	table := make(map[string]Language)
	var order []Language
	seen := make(map[Language]bool)
	for _, entry := range t.Languages {
		if entry.Language == "" {
			return nil, nil, fmt.Errorf("languages table entry has no language name")
		}
		lang := Language(entry.Language)
		if !seen[lang] {
			seen[lang] = true
			order = append(order, lang)
		}
		for _, ext := range entry.Extensions {
			ext = NormalizeExt(ext)
			if _, exists := table[ext]; !exists {
				table[ext] = lang
			}
		}
	}
	return table, order, nil
}

// NormalizeExt lowercases an extension and strips a leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// Ext returns the normalized extension of a file name, without the dot.
// Dotfiles such as ".gitignore" have no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return NormalizeExt(ext)
}

// DetectLanguage maps a file extension to a language.
// The extension may be given with or without a leading dot.
// Unknown or empty extensions return Unclassified.
func DetectLanguage(ext string) Language {
	ext = NormalizeExt(ext)
	if ext == "" {
		return Unclassified
	}
	if lang, ok := embedded().byExt[ext]; ok {
		return lang
	}
	return Unclassified
}

// KnownLanguages returns every language in the embedded table, in table order.
// The slice is a copy.
func KnownLanguages() []Language {
	return slices.Clone(embedded().order)
}

// CountLines returns the number of lines in content holding at least one
// non-whitespace character. ok is false when content is not valid UTF-8, in
// which case the count is zero.
func CountLines(content []byte) (lines int, ok bool) {
	if !utf8.Valid(content) {
		return 0, false
	}
	for line := range bytes.Lines(content) {
		if len(bytes.TrimSpace(line)) > 0 {
			lines++
		}
	}
	return lines, true
}
