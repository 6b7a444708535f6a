package jobs

import (
	"bytes"
	"html/template"

	"cwdash/internal/pkg/jobview"

	"github.com/dustin/go-humanize"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body{{if .DarkMode}} class="dark"{{end}}>
<h1>{{.Title}}</h1>
{{- if .Error}}
<div class="alert error">{{.Error}}</div>
{{- end}}
<div class="counters">
<span class="count completed" data-bucket="completed">{{.Counters.Completed}}</span>
<span class="count running" data-bucket="running">{{.Counters.Running}}</span>
<span class="count pending" data-bucket="pending">{{.Counters.Pending}}</span>
<span class="count stalled" data-bucket="stalled">{{.Counters.Stalled}}</span>
</div>
<p class="summary">{{.TotalItems}} of {{.NbrTotalJobs}} jobs</p>
{{.Table}}
{{.Pagination}}
</body>
</html>
`))

type counterText struct {
	Completed, Running, Pending, Stalled string
}

type pageData struct {
	Title        string
	DarkMode     bool
	Error        string
	Counters     counterText
	TotalItems   string
	NbrTotalJobs string
	Table        template.HTML
	Pagination   template.HTML
}

// renderPage 渲染完整 HTML 页面. 表格和分页由 html/template 生成, 可直接嵌入.
func renderPage(title string, darkMode bool, v jobview.View, errMsg string) ([]byte, error) {
	var table, pagination bytes.Buffer
	if err := v.Table.WriteHTML(&table); err != nil {
		return nil, err
	}
	if err := jobview.WritePaginationHTML(&pagination, v.Pagination); err != nil {
		return nil, err
	}

	data := pageData{
		Title:    title,
		DarkMode: darkMode,
		Error:    errMsg,
		Counters: counterText{
			Completed: humanize.Comma(int64(v.Counters.Completed)),
			Running:   humanize.Comma(int64(v.Counters.Running)),
			Pending:   humanize.Comma(int64(v.Counters.Pending)),
			Stalled:   humanize.Comma(int64(v.Counters.Stalled)),
		},
		TotalItems:   humanize.Comma(int64(v.TotalItems)),
		NbrTotalJobs: humanize.Comma(int64(v.NbrTotalJobs)),
		Table:        template.HTML(table.String()),
		Pagination:   template.HTML(pagination.String()),
	}
	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
