package pathfinder

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects how a query term is compared against file names.
type Mode int

// Mode constants, see ParseQuery for how each is selected.
const (
	ModeSubstring Mode = iota
	ModeExactFilename
	ModeExactExtension
	ModeExactStem
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSubstring:
		return "substring"
	case ModeExactFilename:
		return "exact-filename"
	case ModeExactExtension:
		return "exact-extension"
	case ModeExactStem:
		return "exact-stem"
	}
	return "unknown"
}

// Query is a parsed search request. It is built once per run by ParseQuery
// and never mutated afterwards.
type Query struct {
	// Raw is the term exactly as the caller supplied it.
	Raw string

	// Term is the comparison text with quotes and filter prefixes removed.
	// It is also the substring searched for in file content.
	Term string

	Mode Mode

	// Extensions holds the accepted extensions (case-folded, leading dot)
	// when Mode is ModeExactExtension.
	Extensions []string

	// SearchContent is false for filename-only searches and for every
	// extension filter.
	SearchContent bool
}

// ParseQuery interprets raw into a Query.
//
// A term wrapped in quotes requests an exact match: a leading dot selects
// the extension, any other dot the full filename, and no dot the stem.
// Unquoted terms are substring matches, except the ext:<.ext> and
// type:<group> prefixes which select extension filters. Comparisons are
// case-insensitive. Returns EINVALID for an empty or malformed term.
func ParseQuery(raw string, filenameOnly bool) (*Query, error) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return nil, Errorf(EINVALID, "search term required")
	}

	q := &Query{Raw: raw}

	if inner, ok := unquote(term); ok {
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return nil, Errorf(EINVALID, "quoted search term is empty")
		}
		switch {
		case strings.ContainsAny(inner, `/\`):
			// Path-like terms match on their final component.
			base := inner[strings.LastIndexAny(inner, `/\`)+1:]
			if base == "" {
				return nil, Errorf(EINVALID, "quoted path %q has no file name", inner)
			}
			q.Term, q.Mode = base, ModeExactFilename
		case strings.HasPrefix(inner, "."):
			ext, err := normalizeExtension(inner)
			if err != nil {
				return nil, err
			}
			q.Term, q.Mode, q.Extensions = inner, ModeExactExtension, []string{ext}
		case strings.Contains(inner, "."):
			q.Term, q.Mode = inner, ModeExactFilename
		default:
			q.Term, q.Mode = inner, ModeExactStem
		}
	} else {
		lower := strings.ToLower(term)
		switch {
		case strings.HasPrefix(lower, "ext:"):
			ext, err := normalizeExtension(term[len("ext:"):])
			if err != nil {
				return nil, err
			}
			q.Term, q.Mode, q.Extensions = ext, ModeExactExtension, []string{ext}
		case strings.HasPrefix(lower, "type:"):
			group := Fold(strings.TrimSpace(term[len("type:"):]))
			exts, ok := TypeGroups[group]
			if !ok {
				return nil, Errorf(EINVALID, "unknown file type %q (known: %s)", group, strings.Join(TypeGroupNames(), ", "))
			}
			q.Term, q.Mode = group, ModeExactExtension
			q.Extensions = append([]string(nil), exts...)
		default:
			q.Term, q.Mode = term, ModeSubstring
		}
	}

	q.SearchContent = !filenameOnly && q.Mode != ModeExactExtension
	return q, nil
}

// Needle returns the case-folded comparison text.
func (q *Query) Needle() string {
	return Fold(q.Term)
}

// MatchesName reports whether the file name ends in one of the query's
// extensions and keeps a non-empty stem, so ".tar.gz" selects
// "backup.tar.gz" but not "backup.gz". Only meaningful for
// ModeExactExtension.
func (q *Query) MatchesName(name string) bool {
	name = Fold(name)
	for _, e := range q.Extensions {
		if len(name) > len(e) && strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// Fold returns the case-folded form of s used for all comparisons.
func Fold(s string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(s)
}

// SplitName splits a file name into its stem and extension. The extension
// keeps its leading dot. Names without a stem (".profile") have no extension.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func normalizeExtension(s string) (string, error) {
	ext := strings.TrimSpace(s)
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.ContainsAny(ext, `/\ `) {
		return "", Errorf(EINVALID, "invalid extension %q", s)
	}
	return "." + Fold(ext), nil
}
