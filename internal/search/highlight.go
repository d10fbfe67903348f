// Package search turns a search phrase and a piece of text into render-ready
// fragments: the splitter finds every occurrence of the phrase, and the
// emphasis helpers wrap those occurrences in markers for the results page.
package search

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Emphasis markers wrapped around matched text.
const (
	markerOpen  = "<em>"
	markerClose = "</em>"
)

// Segment is one run of text. Match marks it as an occurrence of the
// searched phrase.
type Segment struct {
	Text  string
	Match bool
}

// SplitAtOccurrences cuts text into alternating (non-matching, matching)
// segments. Matching is case-insensitive and non-overlapping: after a hit,
// scanning resumes immediately past the matched span. A match flush against
// the previous one produces an empty non-matching segment in between, so
// the alternation always holds; a trailing non-matching tail, if any, is
// appended once at the end.
func SplitAtOccurrences(substr, text string) []Segment {
	if text == "" {
		return nil
	}
	if substr == "" {
		return []Segment{{Text: text}}
	}

	// Match rune by rune against the original string. Lowercasing the whole
	// text and reusing its offsets would be wrong: lowering can change a
	// rune's byte length (U+023A "Ⱥ" is 2 bytes, its lowercase 3), so
	// offsets from the lowered copy slice the original mid-rune.
	folded := []rune(substr)
	for i, r := range folded {
		folded[i] = unicode.ToLower(r)
	}

	var segments []Segment
	start := 0
	pos := 0
	for pos < len(text) {
		end, ok := matchAt(text, pos, folded)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
			continue
		}
		segments = append(segments,
			Segment{Text: text[start:pos]},
			Segment{Text: text[pos:end], Match: true},
		)
		start = end
		pos = end
	}

	if start < len(text) || len(segments) == 0 {
		segments = append(segments, Segment{Text: text[start:]})
	}

	return segments
}

// matchAt reports whether the folded phrase occurs at byte offset pos of
// text, and returns the byte offset just past the occurrence.
func matchAt(text string, pos int, folded []rune) (end int, ok bool) {
	for _, want := range folded {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0, false
		}
		pos += size
	}
	return pos, true
}

// Emphasize wraps every occurrence of substr in text with emphasis markers.
// Only the original text is scanned, so inserted markers are never matched
// and text free of occurrences comes back unchanged.
func Emphasize(substr, text string) string {
	segments := SplitAtOccurrences(substr, text)

	var b strings.Builder
	for _, seg := range segments {
		if seg.Match {
			b.WriteString(markerOpen)
			b.WriteString(seg.Text)
			b.WriteString(markerClose)
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Highlight is the template-facing variant: it HTML-escapes every segment
// and wraps matches in an <em> with a styling hook, returning a value safe
// to inject into a page.
func Highlight(substr, text string) template.HTML {
	segments := SplitAtOccurrences(substr, text)

	var b strings.Builder
	for _, seg := range segments {
		escaped := template.HTMLEscapeString(seg.Text)
		if seg.Match {
			b.WriteString(`<em class="match">`)
			b.WriteString(escaped)
			b.WriteString(`</em>`)
		} else {
			b.WriteString(escaped)
		}
	}
	return template.HTML(b.String())
}
