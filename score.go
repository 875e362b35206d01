package pathfinder

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Scoring weights. An exact match must always outrank any amount of
// content hits, so WeightExact stays above ContentWeightCap.
const (
	WeightExact          = 100.0
	WeightSubstringBase  = 25.0
	WeightSubstringSpan  = 25.0
	WeightPrefix         = 5.0
	WeightContentHit     = 2.0
	ContentWeightCap     = 30.0
	WeightExtensionBonus = 5.0
)

// Score combines the filename, extension, and content signals of c into a
// ScoredResult. The bool result is false when nothing matched; such
// candidates are dropped rather than emitted with a zero score.
func Score(c *FileCandidate, q *Query, m *ContentMatch) (*ScoredResult, bool) {
	var score float64
	var on Signals

	needle := q.Needle()
	name := Fold(c.Name)

	switch q.Mode {
	case ModeExactExtension:
		if q.MatchesName(c.Name) {
			score += WeightExact
			on |= SignalExtension
		}
	case ModeExactFilename:
		if name == needle {
			score += WeightExact
			on |= SignalFilename
		}
	case ModeExactStem:
		if Fold(c.Stem) == needle {
			score += WeightExact
			on |= SignalFilename
		}
	case ModeSubstring:
		if needle != "" && strings.Contains(name, needle) {
			score += substringWeight(name, needle)
			on |= SignalFilename
		}
	}

	if q.SearchContent && m != nil && m.Occurrences > 0 {
		score += ContentWeight(m.Occurrences)
		on |= SignalContent
	}

	// The extension bonus only strengthens an existing match.
	if on != 0 && q.Mode != ModeExactExtension && impliesExtension(needle, c.Ext) {
		score += WeightExtensionBonus
		on |= SignalExtension
	}

	if score <= 0 {
		return nil, false
	}

	var hits uint
	if m != nil && on.Has(SignalContent) {
		hits = m.Occurrences
	}
	return &ScoredResult{
		Path:        c.Path,
		Root:        c.Root,
		Score:       score,
		MatchedOn:   on,
		Depth:       c.Depth,
		Occurrences: hits,
		Size:        c.Size,
		ModTime:     c.ModTime,
	}, true
}

// ContentWeight returns the score contribution of n content hits:
// logarithmic in n and capped at ContentWeightCap.
func ContentWeight(n uint) float64 {
	if n == 0 {
		return 0
	}
	return math.Min(WeightContentHit*(1+math.Log(float64(n))), ContentWeightCap)
}

// substringWeight rewards needles that cover more of the name, and names
// that start with the needle.
func substringWeight(name, needle string) float64 {
	coverage := float64(utf8.RuneCountInString(needle)) / float64(utf8.RuneCountInString(name))
	w := WeightSubstringBase + WeightSubstringSpan*math.Min(coverage, 1)
	if strings.HasPrefix(name, needle) {
		w += WeightPrefix
	}
	return w
}

// impliesExtension reports whether the folded needle names ext directly
// ("jpeg" for .jpeg), through a type group ("image" for .png), or through
// a type alias ("pfp" for .jpeg).
func impliesExtension(needle, ext string) bool {
	if ext == "" {
		return false
	}
	ext = Fold(ext)
	if strings.TrimPrefix(ext, ".") == needle {
		return true
	}
	if InTypeGroup(needle, ext) {
		return true
	}
	group, ok := TypeAliases[needle]
	return ok && InTypeGroup(group, ext)
}
