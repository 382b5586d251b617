// Package wikitext parses the subset of MediaWiki markup needed to pull
// event data out of a meetup page: headings, template invocations and
// internal links. It is not a general purpose wikitext parser; anything
// else is kept as opaque text.
package wikitext

import (
	"sort"
	"strings"
)

// Span is a byte range [Start, End) in the original markup.
type Span struct {
	Start int
	End   int
}

// Argument is one template argument.
// Positional arguments have an empty Name.
type Argument struct {
	Name  string
	Value string
}

// Template is a {{Name|arg|key=value}} invocation.
type Template struct {
	Span
	Raw  string
	Name string
	Args []Argument
}

// Arg returns the named argument. Names compare after trimming whitespace.
func (t *Template) Arg(name string) (Argument, bool) {
	for _, a := range t.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Link is an internal [[Target|text]] link.
type Link struct {
	Span
	Raw    string
	Target string
}

// Namespace returns the namespace prefix of the target, or "" if none.
func (l *Link) Namespace() string {
	ns, _, ok := strings.Cut(l.Target, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(ns)
}

// PageName returns the target without its namespace prefix.
func (l *Link) PageName() string {
	_, name, ok := strings.Cut(l.Target, ":")
	if !ok {
		return l.Target
	}
	return strings.TrimSpace(name)
}

// Unclosed marks an opener ("{{", "[[" or "{{{") that was never closed.
type Unclosed struct {
	Offset int
	Opener string
}

// Document is parsed markup.
type Document struct {
	view

	text      string
	templates []*Template
	links     []*Link
	unclosed  []Unclosed
	sections  []*Section
}

// Text returns the original markup.
func (d *Document) Text() string {
	return d.text
}

// Sections returns the lead section (level 0) followed by one section per
// heading in document order. A section's contents run until the next heading
// of the same or a shallower level, so nested sub-headings stay inside it.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Section is a heading together with the markup nested below it.
type Section struct {
	view

	// Level is the heading depth; 1 for "= x =", 0 for the lead.
	Level int

	// Title is the heading text between the "=" runs, untrimmed.
	Title string
}

// Contents returns the raw markup below the heading.
func (s *Section) Contents() string {
	return s.doc.text[s.start:s.end]
}

// view scopes queries to a byte range of a document.
type view struct {
	doc   *Document
	start int
	end   int
}

func (v view) contains(sp Span) bool {
	return sp.Start >= v.start && sp.End <= v.end
}

// Templates returns all templates in range, nested ones included, ordered by
// their starting offset.
func (v view) Templates() []*Template {
	var out []*Template
	for _, t := range v.doc.templates {
		if v.contains(t.Span) {
			out = append(out, t)
		}
	}
	return out
}

// Links returns all internal links in range ordered by starting offset.
func (v view) Links() []*Link {
	var out []*Link
	for _, l := range v.doc.links {
		if v.contains(l.Span) {
			out = append(out, l)
		}
	}
	return out
}

// FindTemplatesByName returns templates whose name equals name ignoring case.
// Underscores in template names are treated as spaces, as MediaWiki does.
func (v view) FindTemplatesByName(name string) []*Template {
	want := normalizeName(name)
	var out []*Template
	for _, t := range v.Templates() {
		if strings.EqualFold(normalizeName(t.Name), want) {
			out = append(out, t)
		}
	}
	return out
}

// FindLinksByNamespace returns links whose target lives in namespace ns,
// compared ignoring case.
func (v view) FindLinksByNamespace(ns string) []*Link {
	var out []*Link
	for _, l := range v.Links() {
		if strings.Contains(l.Target, ":") && strings.EqualFold(l.Namespace(), ns) {
			out = append(out, l)
		}
	}
	return out
}

// Unclosed returns openers in range that were never closed.
func (v view) Unclosed() []Unclosed {
	var out []Unclosed
	for _, u := range v.doc.unclosed {
		if u.Offset >= v.start && u.Offset < v.end {
			out = append(out, u)
		}
	}
	return out
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}

func sortTemplates(ts []*Template) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Start < ts[j].Start })
}

func sortLinks(ls []*Link) {
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Start < ls[j].Start })
}
