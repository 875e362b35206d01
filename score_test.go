package pathfinder_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pathfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate(path string) *pathfinder.FileCandidate {
	name := filepath.Base(path)
	stem, ext := pathfinder.SplitName(name)
	return &pathfinder.FileCandidate{
		Path:     path,
		Root:     "/root",
		Name:     name,
		Stem:     stem,
		Ext:      ext,
		Depth:    strings.Count(path, "/") - 1,
		Readable: true,
	}
}

func mustParse(t *testing.T, raw string) *pathfinder.Query {
	t.Helper()
	q, err := pathfinder.ParseQuery(raw, false)
	require.NoError(t, err)
	return q
}

func TestScore_ExactExtension(t *testing.T) {
	t.Parallel()

	q := mustParse(t, `".pdf"`)

	t.Run("matches extension case-insensitively", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/root/report.pdf", "/root/SCAN.PDF"} {
			r, ok := pathfinder.Score(newCandidate(path), q, nil)
			require.True(t, ok, path)
			assert.Equal(t, pathfinder.WeightExact, r.Score)
			assert.Equal(t, pathfinder.SignalExtension, r.MatchedOn)
		}
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/root/report.pdf.txt", "/root/pdf", "/root/pdf.doc"} {
			_, ok := pathfinder.Score(newCandidate(path), q, nil)
			assert.False(t, ok, path)
		}
	})

	t.Run("ignores content hits", func(t *testing.T) {
		t.Parallel()

		m := &pathfinder.ContentMatch{Occurrences: 12, Encoding: pathfinder.EncodingUTF8}
		r, ok := pathfinder.Score(newCandidate("/root/report.pdf"), q, m)

		require.True(t, ok)
		assert.Equal(t, pathfinder.WeightExact, r.Score)
		assert.False(t, r.MatchedOn.Has(pathfinder.SignalContent))
		assert.Zero(t, r.Occurrences)

		_, ok = pathfinder.Score(newCandidate("/root/notes.txt"), q, m)
		assert.False(t, ok)
	})

	t.Run("matches multi-part extensions", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, `".tar.gz"`)

		r, ok := pathfinder.Score(newCandidate("/root/backup.tar.gz"), q, nil)
		require.True(t, ok)
		assert.Equal(t, pathfinder.SignalExtension, r.MatchedOn)

		_, ok = pathfinder.Score(newCandidate("/root/backup.gz"), q, nil)
		assert.False(t, ok)
	})
}

func TestScore_ExactFilename(t *testing.T) {
	t.Parallel()

	q := mustParse(t, `"pfp.jpeg"`)

	for _, path := range []string{"/root/pfp.jpeg", "/root/PFP.JPEG"} {
		r, ok := pathfinder.Score(newCandidate(path), q, nil)
		require.True(t, ok, path)
		assert.True(t, r.MatchedOn.Has(pathfinder.SignalFilename))
		assert.GreaterOrEqual(t, r.Score, pathfinder.WeightExact)
	}

	for _, path := range []string{"/root/pfp.jpg", "/root/myPfp.jpeg", "/root/pfp.jpeg.bak"} {
		_, ok := pathfinder.Score(newCandidate(path), q, nil)
		assert.False(t, ok, path)
	}
}

func TestScore_ExactStem(t *testing.T) {
	t.Parallel()

	q := mustParse(t, `"pfp"`)

	for _, path := range []string{"/root/pfp.png", "/root/pfp.txt", "/root/Pfp"} {
		r, ok := pathfinder.Score(newCandidate(path), q, nil)
		require.True(t, ok, path)
		assert.True(t, r.MatchedOn.Has(pathfinder.SignalFilename), path)
		assert.GreaterOrEqual(t, r.Score, pathfinder.WeightExact, path)
	}

	_, ok := pathfinder.Score(newCandidate("/root/pfpX.png"), q, nil)
	assert.False(t, ok)
}

func TestScore_Substring(t *testing.T) {
	t.Parallel()

	t.Run("matches substring of filename", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "pf")

		r, ok := pathfinder.Score(newCandidate("/root/pfp.png"), q, nil)
		require.True(t, ok)
		assert.Equal(t, pathfinder.SignalFilename, r.MatchedOn)

		_, ok = pathfinder.Score(newCandidate("/root/pdf-archive.txt"), q, nil)
		assert.False(t, ok)
	})

	t.Run("rewards tighter matches", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "report")

		tight, ok := pathfinder.Score(newCandidate("/root/report.pdf"), q, nil)
		require.True(t, ok)
		loose, ok := pathfinder.Score(newCandidate("/root/annual-report-final.pdf"), q, nil)
		require.True(t, ok)

		assert.Greater(t, tight.Score, loose.Score)
		assert.Less(t, tight.Score, pathfinder.WeightExact)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "PFP")

		_, ok := pathfinder.Score(newCandidate("/root/my-pfp.png"), q, nil)
		assert.True(t, ok)
	})
}

func TestScore_Content(t *testing.T) {
	t.Parallel()

	t.Run("content hits alone produce a result", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "invoice")
		m := &pathfinder.ContentMatch{Occurrences: 3}

		r, ok := pathfinder.Score(newCandidate("/root/notes.txt"), q, m)

		require.True(t, ok)
		assert.Equal(t, pathfinder.SignalContent, r.MatchedOn)
		assert.Equal(t, uint(3), r.Occurrences)
		assert.Equal(t, pathfinder.ContentWeight(3), r.Score)
	})

	t.Run("zero hits do not match", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "invoice")
		m := &pathfinder.ContentMatch{Occurrences: 0}

		_, ok := pathfinder.Score(newCandidate("/root/notes.txt"), q, m)
		assert.False(t, ok)
	})

	t.Run("content is ignored for filename-only queries", func(t *testing.T) {
		t.Parallel()

		q, err := pathfinder.ParseQuery("invoice", true)
		require.NoError(t, err)
		m := &pathfinder.ContentMatch{Occurrences: 3}

		_, ok := pathfinder.Score(newCandidate("/root/notes.txt"), q, m)
		assert.False(t, ok)
	})

	t.Run("exact filename outranks five content hits", func(t *testing.T) {
		t.Parallel()

		require.Greater(t, pathfinder.WeightExact, 5*pathfinder.WeightContentHit)
		q := mustParse(t, `"pfp.jpeg"`)

		exact, ok := pathfinder.Score(newCandidate("/root/pfp.jpeg"), q, nil)
		require.True(t, ok)
		content, ok := pathfinder.Score(newCandidate("/root/notes.txt"), q, &pathfinder.ContentMatch{Occurrences: 5})
		require.True(t, ok)

		assert.GreaterOrEqual(t, exact.Score, content.Score)
	})

	t.Run("exact filename outranks any number of content hits", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, `"pfp"`)

		exact, ok := pathfinder.Score(newCandidate("/root/pfp.png"), q, nil)
		require.True(t, ok)
		content, ok := pathfinder.Score(newCandidate("/root/log.txt"), q, &pathfinder.ContentMatch{Occurrences: 1_000_000})
		require.True(t, ok)

		assert.Greater(t, exact.Score, content.Score)
	})
}

func TestScore_ExtensionBonus(t *testing.T) {
	t.Parallel()

	t.Run("type group name adds bonus to filename match", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "image")

		withBonus, ok := pathfinder.Score(newCandidate("/root/image-1.png"), q, nil)
		require.True(t, ok)
		without, ok := pathfinder.Score(newCandidate("/root/image-1.txt"), q, nil)
		require.True(t, ok)

		assert.True(t, withBonus.MatchedOn.Has(pathfinder.SignalFilename|pathfinder.SignalExtension))
		assert.False(t, without.MatchedOn.Has(pathfinder.SignalExtension))
		assert.InDelta(t, pathfinder.WeightExtensionBonus, withBonus.Score-without.Score, 1e-9)
	})

	t.Run("bonus alone does not create a match", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "image")

		_, ok := pathfinder.Score(newCandidate("/root/cat.png"), q, nil)
		assert.False(t, ok)
	})

	t.Run("alias implies the image group", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "pfp")

		jpeg, ok := pathfinder.Score(newCandidate("/root/pfp.jpeg"), q, nil)
		require.True(t, ok)
		txt, ok := pathfinder.Score(newCandidate("/root/pfp.txt"), q, nil)
		require.True(t, ok)

		assert.Equal(t, pathfinder.SignalFilename|pathfinder.SignalExtension, jpeg.MatchedOn)
		assert.Equal(t, pathfinder.SignalFilename, txt.MatchedOn)
		assert.Greater(t, jpeg.Score, txt.Score)
	})

	t.Run("alias bonus applies to exact stem matches", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, `"pfp"`)

		png, ok := pathfinder.Score(newCandidate("/root/pfp.png"), q, nil)
		require.True(t, ok)

		assert.Equal(t, pathfinder.WeightExact+pathfinder.WeightExtensionBonus, png.Score)
	})

	t.Run("term equal to extension adds bonus", func(t *testing.T) {
		t.Parallel()

		q := mustParse(t, "jpeg")

		r, ok := pathfinder.Score(newCandidate("/root/holiday.jpeg"), q, nil)
		require.True(t, ok)
		assert.Equal(t, pathfinder.SignalFilename|pathfinder.SignalExtension, r.MatchedOn)
	})
}

func TestContentWeight(t *testing.T) {
	t.Parallel()

	assert.Zero(t, pathfinder.ContentWeight(0))
	assert.Equal(t, pathfinder.WeightContentHit, pathfinder.ContentWeight(1))
	assert.Greater(t, pathfinder.ContentWeight(10), pathfinder.ContentWeight(5))
	assert.Less(t, pathfinder.ContentWeight(10), 10*pathfinder.WeightContentHit)
	assert.Equal(t, pathfinder.ContentWeightCap, pathfinder.ContentWeight(math.MaxUint32))
}
