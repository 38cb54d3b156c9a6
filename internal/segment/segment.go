// Package segment turns raw recipe text into an ordered list of cooking steps.
//
// Recipe bodies mark steps as "1. ...", "2. ..." but the prose itself is full
// of numerals followed by periods (measurements like "2.5cm", ratios like
// "1.5x"), so splitting on every "digit period" misfires. The segmenter only
// accepts a marker when its number equals the next expected ordinal; every
// other numeral stays inside the current step's text.
package segment

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoSteps is returned when the input contains no extractable step text.
var ErrNoSteps = errors.New("segment: no steps could be extracted")

// overlongStep is the length in runes past which a lone step is assumed to be
// a whole recipe that failed to split, triggering the fallback passes.
const overlongStep = 500

var (
	markerRe   = regexp.MustCompile(`(\d+)\.\s+`)
	sentenceRe = regexp.MustCompile(`[.!?]\s+`)
	// navigation command words leaking from poorly delimited source text
	navWordRe    = regexp.MustCompile(`\s*(?:다음단계|다음|\bnext\b)\s*[.。]?\s*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	residualRe   = regexp.MustCompile(`^\d+\.\s*`)
)

// Segment extracts the ordered cooking steps from a recipe body. It fails
// with ErrNoSteps only for empty or whitespace-only input; any other text
// yields at least one step via the fallback ladder.
func Segment(content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoSteps
	}

	steps := splitSequential(content)

	// Fallback 1: nothing matched the expected ordinals, keep the whole
	// body as a single step.
	if len(steps) == 0 {
		steps = []string{content}
	}

	// Fallback 2: one overlong step usually means the whole recipe
	// collapsed into it. Try sentence-ending punctuation.
	if len(steps) == 1 && len([]rune(steps[0])) > overlongStep {
		if split := splitSentences(steps[0]); len(split) > 1 {
			steps = split
		}
	}

	// Fallback 3: re-scan overlong steps for embedded numeric markers.
	steps = splitEmbedded(steps)

	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if cleaned := cleanStep(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	if len(out) == 0 {
		// Every candidate cleaned away to nothing; fall back to the
		// trimmed original so callers never get an empty list silently.
		out = []string{cleanStep(content)}
		if out[0] == "" {
			return nil, ErrNoSteps
		}
	}
	return out, nil
}

// splitSequential scans for "number period whitespace" markers and accepts one
// only when it carries the next expected step number. Rejected markers are
// folded back into the current step buffer as literal text.
func splitSequential(content string) []string {
	locs := markerRe.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	var steps []string
	var buf strings.Builder
	buf.WriteString(content[:locs[0][0]])
	expected := 1

	for i, loc := range locs {
		num, err := strconv.Atoi(content[loc[2]:loc[3]])
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := content[loc[1]:end]

		if err == nil && num == expected {
			if text := strings.TrimSpace(buf.String()); text != "" {
				steps = append(steps, text)
			}
			buf.Reset()
			buf.WriteString(body)
			expected++
		} else {
			// Not the ordinal we are waiting for (e.g. the 2 in
			// "2.3cm"); keep the literal text in the current step.
			buf.WriteString(content[loc[0]:loc[1]])
			buf.WriteString(body)
		}
	}
	if text := strings.TrimSpace(buf.String()); text != "" {
		steps = append(steps, text)
	}
	return steps
}

func splitSentences(s string) []string {
	parts := sentenceRe.Split(s, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len([]rune(p)) > 10 {
			out = append(out, p)
		}
	}
	return out
}

// splitEmbedded breaks apart steps that still contain several numeric markers,
// which happens when a fallback pass produced a step holding multiple original
// steps.
func splitEmbedded(steps []string) []string {
	var out []string
	for _, step := range steps {
		if len([]rune(step)) <= overlongStep {
			out = append(out, step)
			continue
		}
		locs := markerRe.FindAllStringSubmatchIndex(step, -1)
		if len(locs) < 2 {
			out = append(out, step)
			continue
		}
		for i, loc := range locs {
			end := len(step)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			if inner := strings.TrimSpace(step[loc[1]:end]); inner != "" {
				out = append(out, inner)
			}
		}
	}
	return out
}

// cleanStep removes residual step markers and leaked navigation command words,
// then collapses whitespace runs.
func cleanStep(s string) string {
	s = residualRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = navWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
