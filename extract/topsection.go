package extract

import (
	"strings"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/wikitext"
)

// TopSectionMode selects how hosts and date are read from the top section.
type TopSectionMode int

const (
	// TemplateArgs reads Host and Date arguments of the first template,
	// e.g. {{Event|Host=alice, bob|Date=2020-01-03}}.
	TemplateArgs TopSectionMode = iota

	// MarkupScan collects user links and author templates as hosts.
	// The date must be configured since the markup does not carry it.
	MarkupScan
)

// String returns the configuration name of the mode.
func (m TopSectionMode) String() string {
	switch m {
	case TemplateArgs:
		return "template"
	case MarkupScan:
		return "scan"
	}
	return "unknown"
}

// ParseTopSectionMode parses a mode name as returned by String.
func ParseTopSectionMode(s string) (TopSectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "template", "":
		return TemplateArgs, nil
	case "scan":
		return MarkupScan, nil
	}
	return 0, freitagsfoo.Errorf(freitagsfoo.EINVALID, "unknown top section mode %q", s)
}

// ParseTopSection returns hosts and date from the first template invocation
// in the top section. Hosts are split at commas, trimmed and lowercased.
func ParseTopSection(text string) (hosts []string, date string, err error) {
	templates := wikitext.Parse(text).Templates()
	if len(templates) == 0 {
		return nil, "", freitagsfoo.Errorf(freitagsfoo.EMALFORMED, "no template found in top section")
	}
	event := templates[0]

	host, ok := event.Arg("Host")
	if !ok {
		return nil, "", freitagsfoo.Errorf(freitagsfoo.EMALFORMED, "template %q has no Host argument", event.Name)
	}
	dateArg, ok := event.Arg("Date")
	if !ok {
		return nil, "", freitagsfoo.Errorf(freitagsfoo.EMALFORMED, "template %q has no Date argument", event.Name)
	}

	hosts = []string{}
	for _, h := range strings.Split(host.Value, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		hosts = append(hosts, h)
	}

	date = strings.TrimSpace(dateArg.Value)
	if _, err := freitagsfoo.ParseDate(date); err != nil {
		return nil, "", freitagsfoo.Errorf(freitagsfoo.EMALFORMED, "template %q has invalid Date %q", event.Name, date)
	}

	return hosts, date, nil
}

// ScanTopSection returns the hosts referenced by user links and author
// templates anywhere in the top section, in document order.
func ScanTopSection(text string, authors Authors) ([]string, error) {
	hosts, bad := authors.find(wikitext.Parse(text))
	if bad != "" {
		return nil, freitagsfoo.Errorf(freitagsfoo.EMALFORMED, "author reference %q names no one", bad)
	}
	return hosts, nil
}
