package jobview

import (
	"html/template"
	"io"
	"strconv"

	"cwdash/internal/pkg/common/paging"
)

const (
	ControlPrev = "prev"
	ControlPage = "page"
	ControlNext = "next"
)

// PageControl is one entry of the pagination bar. Disabled and Current
// entries are rendered as static text, the others as links.
type PageControl struct {
	Kind     string `json:"kind"`
	Page     int    `json:"page"`
	Label    string `json:"label"`
	Current  bool   `json:"current,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Static reports whether the control is rendered without a link.
func (p PageControl) Static() bool {
	return p.Current || p.Disabled
}

// Pagination builds the controls for page out of total items. Nothing is
// returned when everything fits on one page. maxStep caps the targets of the
// previous/next controls.
func Pagination(page, pageSize, total, maxStep int) []PageControl {
	last := paging.TotalPages(total, pageSize)
	if last <= 1 {
		return nil
	}
	stepCap := last
	if maxStep > 0 && maxStep < stepCap {
		stepCap = maxStep
	}

	out := make([]PageControl, 0, last+2)
	out = append(out, PageControl{
		Kind:     ControlPrev,
		Page:     paging.Step(page, -1, stepCap),
		Label:    "Previous",
		Disabled: page <= 1,
	})
	for p := 1; p <= last; p++ {
		out = append(out, PageControl{
			Kind:    ControlPage,
			Page:    p,
			Label:   strconv.Itoa(p),
			Current: p == page,
		})
	}
	out = append(out, PageControl{
		Kind:     ControlNext,
		Page:     paging.Step(page, 1, stepCap),
		Label:    "Next",
		Disabled: page >= last,
	})
	return out
}

var paginationTemplate = template.Must(template.New("pagination").Parse(`<ul class="pagination">
{{- range .}}<li class="{{.Kind}}{{if .Current}} current{{end}}{{if .Disabled}} disabled{{end}}">
{{- if .Static}}<span>{{.Label}}</span>{{else}}<a href="?page={{.Page}}" data-page="{{.Page}}">{{.Label}}</a>{{end -}}
</li>{{end}}
</ul>`))

// WritePaginationHTML renders controls as a list. An empty slice writes nothing.
func WritePaginationHTML(w io.Writer, controls []PageControl) error {
	if len(controls) == 0 {
		return nil
	}
	return paginationTemplate.Execute(w, controls)
}
