package wikitext

import (
	"strings"
)

const maxHeadingLevel = 6

type frameKind int

const (
	frameTemplate frameKind = iota
	frameLink
	frameParameter
)

var openers = map[frameKind]string{
	frameTemplate:  "{{",
	frameLink:      "[[",
	frameParameter: "{{{",
}

// frame is an open construct on the parse stack.
type frame struct {
	kind  frameKind
	start int
	pipes []int // offsets of top-level "|"
	eqs   []int // offset of the first top-level "=" per argument, -1 if none
}

// Parse parses markup. Parsing never fails: constructs that are opened but
// not closed are kept as text and reported by Unclosed.
//
// HTML comments and <nowiki>, <pre>, <syntaxhighlight>, <source> and <math>
// blocks are opaque; markup inside them does not produce templates, links or
// headings.
func Parse(text string) *Document {
	d := &Document{text: text}
	d.view = view{doc: d, start: 0, end: len(text)}

	s := mask(text)
	d.parseInline(s)
	d.parseSections(s)
	return d
}

func (d *Document) parseInline(s string) {
	var stack []*frame

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	// closeFrame pops up to and including the innermost frame of kind k.
	// Frames above it were never closed.
	closeFrame := func(k frameKind) *frame {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].kind != k {
				continue
			}
			for _, f := range stack[i+1:] {
				d.unclosed = append(d.unclosed, Unclosed{Offset: f.start, Opener: openers[f.kind]})
			}
			f := stack[i]
			stack = stack[:i]
			return f
		}
		return nil
	}

	for i := 0; i < len(s); {
		f := top()
		switch {
		case strings.HasPrefix(s[i:], "{{{"):
			stack = append(stack, &frame{kind: frameParameter, start: i})
			i += 3
		case strings.HasPrefix(s[i:], "{{"):
			stack = append(stack, &frame{kind: frameTemplate, start: i})
			i += 2
		case strings.HasPrefix(s[i:], "[["):
			stack = append(stack, &frame{kind: frameLink, start: i})
			i += 2
		case strings.HasPrefix(s[i:], "}}}") && f != nil && f.kind == frameParameter:
			closeFrame(frameParameter)
			i += 3
		case strings.HasPrefix(s[i:], "}}"):
			if tf := closeFrame(frameTemplate); tf != nil {
				d.templates = append(d.templates, d.newTemplate(s, tf, i+2))
			}
			i += 2
		case strings.HasPrefix(s[i:], "]]"):
			if lf := closeFrame(frameLink); lf != nil {
				d.links = append(d.links, d.newLink(s, lf, i+2))
			}
			i += 2
		case s[i] == '|' && f != nil && f.kind != frameParameter:
			f.pipes = append(f.pipes, i)
			f.eqs = append(f.eqs, -1)
			i++
		case s[i] == '=' && f != nil && f.kind == frameTemplate && len(f.eqs) > 0 && f.eqs[len(f.eqs)-1] == -1:
			f.eqs[len(f.eqs)-1] = i
			i++
		case s[i] == '\n' && f != nil && f.kind == frameLink && len(f.pipes) == 0:
			// Link targets cannot span lines.
			d.unclosed = append(d.unclosed, Unclosed{Offset: f.start, Opener: openers[f.kind]})
			stack = stack[:len(stack)-1]
			i++
		default:
			i++
		}
	}

	for _, f := range stack {
		d.unclosed = append(d.unclosed, Unclosed{Offset: f.start, Opener: openers[f.kind]})
	}

	sortTemplates(d.templates)
	sortLinks(d.links)
}

func (d *Document) newTemplate(s string, f *frame, end int) *Template {
	inner := end - 2
	nameEnd := inner
	if len(f.pipes) > 0 {
		nameEnd = f.pipes[0]
	}

	t := &Template{
		Span: Span{Start: f.start, End: end},
		Raw:  d.text[f.start:end],
		Name: strings.TrimSpace(s[f.start+2 : nameEnd]),
	}

	for n, pipe := range f.pipes {
		argEnd := inner
		if n+1 < len(f.pipes) {
			argEnd = f.pipes[n+1]
		}
		if eq := f.eqs[n]; eq >= 0 {
			t.Args = append(t.Args, Argument{
				Name:  strings.TrimSpace(s[pipe+1 : eq]),
				Value: s[eq+1 : argEnd],
			})
			continue
		}
		t.Args = append(t.Args, Argument{Value: s[pipe+1 : argEnd]})
	}
	return t
}

func (d *Document) newLink(s string, f *frame, end int) *Link {
	inner := end - 2
	l := &Link{
		Span: Span{Start: f.start, End: end},
		Raw:  d.text[f.start:end],
	}
	if len(f.pipes) > 0 {
		l.Target = strings.TrimSpace(s[f.start+2 : f.pipes[0]])
	} else {
		l.Target = strings.TrimSpace(s[f.start+2 : inner])
	}
	return l
}

type heading struct {
	start     int // start of the heading line
	bodyStart int // first byte after the heading line
	level     int
	title     string
}

func (d *Document) parseSections(s string) {
	var headings []heading
	for lineStart := 0; lineStart < len(s); {
		lineEnd := strings.IndexByte(s[lineStart:], '\n')
		next := len(s)
		if lineEnd < 0 {
			lineEnd = len(s)
		} else {
			lineEnd += lineStart
			next = lineEnd + 1
		}

		if !d.insideTemplate(lineStart) {
			if level, title, ok := parseHeading(s[lineStart:lineEnd]); ok {
				headings = append(headings, heading{
					start:     lineStart,
					bodyStart: next,
					level:     level,
					title:     title,
				})
			}
		}
		lineStart = next
	}

	leadEnd := len(s)
	if len(headings) > 0 {
		leadEnd = headings[0].start
	}
	d.sections = append(d.sections, &Section{
		view: view{doc: d, start: 0, end: leadEnd},
	})

	for i, h := range headings {
		end := len(s)
		for _, later := range headings[i+1:] {
			if later.level <= h.level {
				end = later.start
				break
			}
		}
		d.sections = append(d.sections, &Section{
			view:  view{doc: d, start: h.bodyStart, end: end},
			Level: h.level,
			Title: h.title,
		})
	}
}

func (d *Document) insideTemplate(offset int) bool {
	for _, t := range d.templates {
		if t.Start < offset && offset < t.End {
			return true
		}
	}
	return false
}

// parseHeading recognizes "== Title ==" lines. The level is the shorter of
// the two "=" runs; surplus "=" characters belong to the title.
func parseHeading(line string) (level int, title string, ok bool) {
	line = strings.TrimRight(line, " \t\r")
	if len(line) < 3 || line[0] != '=' || line[len(line)-1] != '=' {
		return 0, "", false
	}

	lead := len(line) - len(strings.TrimLeft(line, "="))
	trail := len(line) - len(strings.TrimRight(line, "="))
	if lead == len(line) {
		// A line of only "=" characters: split it evenly.
		lead = (len(line) - 1) / 2
		trail = lead
	}

	level = min(lead, trail, maxHeadingLevel)
	if level == 0 || 2*level >= len(line) {
		return 0, "", false
	}
	return level, line[level : len(line)-level], true
}

// opaqueTags hold markup that MediaWiki passes through unparsed.
var opaqueTags = []string{"nowiki", "pre", "syntaxhighlight", "source", "math"}

// mask blanks HTML comments and opaque tag blocks with spaces, keeping
// newlines and byte offsets intact.
func mask(text string) string {
	b := []byte(text)
	lower := asciiLower(text)

	blank := func(from, to int) {
		for i := from; i < to; i++ {
			if b[i] != '\n' {
				b[i] = ' '
			}
		}
	}

	for i := 0; i < len(b); {
		if strings.HasPrefix(lower[i:], "<!--") {
			end := len(b)
			if j := strings.Index(lower[i+4:], "-->"); j >= 0 {
				end = i + 4 + j + 3
			}
			blank(i, end)
			i = end
			continue
		}
		if end, ok := opaqueBlock(lower, i); ok {
			blank(i, end)
			i = end
			continue
		}
		i++
	}
	return string(b)
}

// opaqueBlock reports the end of an opaque tag block opening at i. The
// element runs to its closing tag, or to the end of text for <nowiki>.
// Other unclosed elements and self-closing tags cover only the tag itself.
func opaqueBlock(lower string, i int) (int, bool) {
	if !strings.HasPrefix(lower[i:], "<") {
		return 0, false
	}
	for _, name := range opaqueTags {
		rest := lower[i+1:]
		if !strings.HasPrefix(rest, name) {
			continue
		}
		after := rest[len(name):]
		if after == "" || !strings.ContainsRune(" \t\n/>", rune(after[0])) {
			continue
		}
		gt := strings.IndexByte(after, '>')
		if gt < 0 {
			return 0, false
		}
		openEnd := i + 1 + len(name) + gt + 1
		if lower[openEnd-2] == '/' {
			return openEnd, true
		}
		if end, ok := closingTag(lower, openEnd, name); ok {
			return end, true
		}
		if name == "nowiki" {
			return len(lower), true
		}
		return openEnd, true
	}
	return 0, false
}

// closingTag finds "</name>" at or after from, allowing whitespace before ">".
func closingTag(lower string, from int, name string) (int, bool) {
	closer := "</" + name
	for from < len(lower) {
		j := strings.Index(lower[from:], closer)
		if j < 0 {
			return 0, false
		}
		k := from + j + len(closer)
		for k < len(lower) && (lower[k] == ' ' || lower[k] == '\t' || lower[k] == '\n') {
			k++
		}
		if k < len(lower) && lower[k] == '>' {
			return k + 1, true
		}
		from = from + j + len(closer)
	}
	return 0, false
}

// asciiLower lowercases ASCII letters only, so byte offsets stay valid.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
