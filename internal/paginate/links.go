// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package paginate

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/toeirei/livetable/internal/logging"
)

// Translator resolves display strings by message ID.
type Translator interface {
	T(messageID string) string
	TData(messageID string, data map[string]any) string
}

// Links renders bootstrap pagination controls for a Page.
type Links struct {
	// URL builds the href for a page number. When nil, links carry only
	// data-intent attributes for a client runtime to act on.
	URL        func(page int) string
	Translator Translator
	EachSide   int
}

type linkItem struct {
	Number   int
	Gap      bool
	Active   bool
	Disabled bool
	Label    string
	Href     string
	Rel      string
}

type linksData struct {
	Label   string
	Summary string
	Show    bool
	Items   []linkItem
}

var linksTmpl = template.Must(template.New("links").Parse(
	`<nav aria-label="{{.Label}}" class="d-flex flex-wrap justify-content-between align-items-center">` +
		`<p class="small text-muted mb-0">{{.Summary}}</p>` +
		`{{if .Show}}<ul class="pagination mb-0">` +
		`{{range .Items}}` +
		`{{if .Gap}}<li class="page-item disabled" aria-disabled="true"><span class="page-link">&hellip;</span></li>` +
		`{{else if .Active}}<li class="page-item active" aria-current="page"><span class="page-link">{{.Label}}</span></li>` +
		`{{else if .Disabled}}<li class="page-item disabled" aria-disabled="true"><span class="page-link">{{.Label}}</span></li>` +
		`{{else}}<li class="page-item"><a class="page-link"{{if .Href}} href="{{.Href}}"{{end}}{{if .Rel}} rel="{{.Rel}}"{{end}} data-intent="page" data-page="{{.Number}}">{{.Label}}</a></li>` +
		`{{end}}{{end}}</ul>{{end}}</nav>`))

// Summary describes the rows p covers, translated through tr when set.
func Summary(p Page, tr Translator) string {
	if tr == nil {
		return "Showing " + strconv.Itoa(p.From()) + " to " + strconv.Itoa(p.To()) + " of " + strconv.Itoa(p.Total) + " results"
	}
	return tr.TData("Showing {{.From}} to {{.To}} of {{.Total}} results",
		map[string]any{"From": p.From(), "To": p.To(), "Total": p.Total})
}

func (l Links) t(id string) string {
	if l.Translator == nil {
		return id
	}
	return l.Translator.T(id)
}

func (l Links) href(n int) string {
	if l.URL == nil {
		return ""
	}
	return l.URL(n)
}

// Links renders the navigation for p.
func (l Links) Links(p Page) template.HTML {
	d := linksData{Label: l.t("Pagination"), Summary: Summary(p, l.Translator), Show: p.HasPages()}
	if d.Show {
		eachSide := l.EachSide
		if eachSide == 0 {
			eachSide = 3
		}
		prev := linkItem{Number: p.Number - 1, Label: l.t("Previous"), Rel: "prev", Disabled: !p.HasPrev()}
		if p.HasPrev() {
			prev.Href = l.href(prev.Number)
		}
		d.Items = append(d.Items, prev)
		for _, n := range p.Window(eachSide) {
			if n == Gap {
				d.Items = append(d.Items, linkItem{Gap: true})
				continue
			}
			d.Items = append(d.Items, linkItem{Number: n, Label: strconv.Itoa(n), Active: n == p.Number, Href: l.href(n)})
		}
		next := linkItem{Number: p.Number + 1, Label: l.t("Next"), Rel: "next", Disabled: !p.HasNext()}
		if p.HasNext() {
			next.Href = l.href(next.Number)
		}
		d.Items = append(d.Items, next)
	}

	var buf bytes.Buffer
	if err := linksTmpl.Execute(&buf, d); err != nil {
		logging.Warnf("pagination render failed: %v", err)
		return ""
	}
	return template.HTML(buf.String())
}
