package extract

import (
	"sort"
	"strings"

	"github.com/fwojciec/freitagsfoo/wikitext"
)

// Authors recognizes the two markup idioms used to name a wiki user:
// links into a user namespace ([[User:alice|Alice]]) and a short author
// template whose first argument is the handle ({{U|alice}}).
type Authors struct {
	Namespaces []string
	Templates  []string
}

// DefaultAuthors matches [[User:…]] links and {{U|…}} templates.
var DefaultAuthors = Authors{
	Namespaces: []string{"User"},
	Templates:  []string{"U"},
}

func (a Authors) isZero() bool {
	return len(a.Namespaces) == 0 && len(a.Templates) == 0
}

// scope is a parsed document or a section of one.
type scope interface {
	FindTemplatesByName(name string) []*wikitext.Template
	FindLinksByNamespace(ns string) []*wikitext.Link
}

type reference struct {
	offset int
	id     string
}

// find returns lowercase handles in document order. If a reference names no
// one, its raw markup is returned as bad.
func (a Authors) find(s scope) (ids []string, bad string) {
	var refs []reference
	for _, ns := range a.Namespaces {
		for _, l := range s.FindLinksByNamespace(ns) {
			id := strings.ToLower(strings.TrimSpace(l.PageName()))
			if id == "" {
				return nil, l.Raw
			}
			refs = append(refs, reference{offset: l.Start, id: id})
		}
	}
	for _, name := range a.Templates {
		for _, t := range s.FindTemplatesByName(name) {
			if len(t.Args) == 0 {
				return nil, t.Raw
			}
			id := strings.ToLower(strings.TrimSpace(t.Args[0].Value))
			if id == "" {
				return nil, t.Raw
			}
			refs = append(refs, reference{offset: t.Start, id: id})
		}
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].offset < refs[j].offset })

	ids = make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.id)
	}
	return ids, ""
}
