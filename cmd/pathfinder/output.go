package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/fwojciec/pathfinder"
	"github.com/fwojciec/pathfinder/search"
)

const timeFormat = "2006-01-02 15:04:05"

// progressWidth bounds the progress line so it fits a narrow terminal.
const progressWidth = 79

// printer writes results to stdout and status to stderr.
type printer struct {
	stdout io.Writer
	stderr io.Writer
	json   bool
	info   bool

	score   *color.Color
	path    *color.Color
	signals *color.Color
	found   *color.Color
	missing *color.Color
	note    *color.Color
	warning *color.Color
}

func newPrinter(deps *Dependencies, asJSON, info bool) *printer {
	p := &printer{
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		json:    asJSON,
		info:    info,
		score:   color.New(color.FgCyan),
		path:    color.New(color.Bold),
		signals: color.New(color.FgHiBlack),
		found:   color.New(color.FgGreen),
		missing: color.New(color.FgRed),
		note:    color.New(color.FgHiMagenta),
		warning: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.score, p.path, p.signals, p.found, p.missing, p.note, p.warning} {
		if deps.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// jsonResult is the --json representation of a result.
type jsonResult struct {
	Path        string   `json:"path"`
	Score       float64  `json:"score"`
	MatchedOn   []string `json:"matched_on"`
	Occurrences uint     `json:"occurrences,omitempty"`
	Size        *int64   `json:"size,omitempty"`
	Modified    string   `json:"modified,omitempty"`
}

func (p *printer) results(results []*pathfinder.ScoredResult) {
	if p.json {
		enc := json.NewEncoder(p.stdout)
		enc.SetEscapeHTML(false)
		for _, r := range results {
			obj := jsonResult{
				Path:        r.Path,
				Score:       round(r.Score),
				MatchedOn:   r.MatchedOn.Names(),
				Occurrences: r.Occurrences,
			}
			if p.info {
				size := r.Size
				obj.Size = &size
				obj.Modified = r.ModTime.Format(timeFormat)
			}
			_ = enc.Encode(obj)
		}
		return
	}

	for _, r := range results {
		line := fmt.Sprintf("%s  %s  %s",
			p.score.Sprintf("%6.1f", r.Score),
			p.path.Sprint(r.Path),
			p.signals.Sprintf("[%s]", r.MatchedOn),
		)
		if p.info {
			line += fmt.Sprintf("  size=%s modified=%s", formatSize(r.Size), r.ModTime.Format(timeFormat))
		}
		fmt.Fprintln(p.stdout, line)
	}
}

func (p *printer) warnings(ws []pathfinder.Warning, verbose bool) {
	if len(ws) == 0 {
		return
	}
	if !verbose {
		p.note.Fprintf(p.stderr, "[status] skipped %d paths (use --verbose for details)\n", len(ws))
		return
	}
	for _, w := range ws {
		p.warning.Fprintf(p.stderr, "[warn] %s: %s\n", w.Code(), w.Message())
	}
}

func (p *printer) status(label string, report *pathfinder.Report, elapsed time.Duration, reason string) {
	c := p.missing
	if len(report.Results) > 0 {
		c = p.found
	}
	c.Fprintf(p.stderr, "[status] (%s) files found: %d, visited: %d, time: %.2fs ",
		label, len(report.Results), report.Visited, elapsed.Seconds())
	p.note.Fprintf(p.stderr, "(stop=%s)\n", reason)
}

func (p *printer) hint(msg string) {
	p.note.Fprintf(p.stderr, "[status] %s\n", msg)
}

func (p *printer) progress(pr search.Progress) {
	line := fmt.Sprintf("[%d visited, %d matched] %s", pr.Visited, pr.Matched, pr.Path)
	fmt.Fprintf(p.stderr, "\r%-*s", progressWidth, shorten(line, progressWidth))
}

// shorten cuts s to at most width characters, marking the cut with "...".
func shorten(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

func (p *printer) clearProgress() {
	fmt.Fprintf(p.stderr, "\r%s\r", strings.Repeat(" ", progressWidth))
}

func round(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
