package notes

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/log"

	"golang.org/x/sync/singleflight"
)

// RootTitle is the title of the synthetic node every folder tree hangs from.
const RootTitle = "Joplin"

// Fetcher is the part of the backend client the viewer needs.
type Fetcher interface {
	FolderAncestors(ctx context.Context, jid string) (clockwork.Hierarchy, error)
	ConvertMarkdown(ctx context.Context, markdown string) (string, error)
	// SessionKey names the backend session ctx belongs to.
	SessionKey(ctx context.Context) string
}

// Viewer 加载笔记层级并渲染查看页面.
//
// 同一会话对同一 jid 的并发加载通过 singleflight 合并为一次后端请求.
// 不同会话看到的笔记可能不同, 不会共享结果.
type Viewer struct {
	fetcher Fetcher
	g       singleflight.Group
	logger  *slog.Logger
}

func NewViewer(fetcher Fetcher, logger *slog.Logger) *Viewer {
	return &Viewer{
		fetcher: fetcher,
		logger:  log.OrDefault(logger),
	}
}

// SessionKey names the session of ctx.
func (v *Viewer) SessionKey(ctx context.Context) string {
	return v.fetcher.SessionKey(ctx)
}

// Load fetches the hierarchy around jid.
func (v *Viewer) Load(ctx context.Context, jid string) (clockwork.Hierarchy, error) {
	key := v.SessionKey(ctx) + "\x00" + jid
	res, err, shared := v.g.Do(key, func() (interface{}, error) {
		return v.fetcher.FolderAncestors(ctx, jid)
	})
	if err != nil {
		return clockwork.Hierarchy{}, fmt.Errorf("load folder ancestry of %s: %w", jid, err)
	}
	if shared {
		v.logger.Debug("shared folder ancestry fetch", "jid", jid)
	}
	return res.(clockwork.Hierarchy), nil
}

// Tree returns the folder ancestry under the synthetic root.
func Tree(h clockwork.Hierarchy) clockwork.Folder {
	return clockwork.Folder{
		Title:    RootTitle,
		Status:   "open",
		Children: h.FoldersAncestry,
	}
}

type noteMeta struct {
	Title     string
	JID       string
	SourceURL string
	Created   string
	Updated   string
	Todo      bool
	Conflict  bool
}

type pageData struct {
	Root        clockwork.Folder
	CurrentJID  string
	Notes       []clockwork.NoteInfo
	Note        *noteMeta
	Body        template.HTML
	RawBody     string
	ConvertFail bool
}

// Render loads jid and renders the whole viewer page. A failed markdown
// conversion still renders the hierarchy, with the raw note body.
func (v *Viewer) Render(ctx context.Context, jid string, f timefmt.Formatter) ([]byte, error) {
	h, err := v.Load(ctx, jid)
	if err != nil {
		return nil, err
	}

	data := pageData{
		Root:       Tree(h),
		CurrentJID: h.NoteJID,
		Notes:      h.NotesLastLevel,
	}
	if data.CurrentJID == "" {
		data.CurrentJID = h.FolderJID
	}
	if n := h.NoteContents; n != nil {
		data.Note = &noteMeta{
			Title:     n.Title,
			JID:       n.JID,
			SourceURL: n.SourceURL,
			Created:   formatMillis(f, n.UserCreatedTime),
			Updated:   formatMillis(f, n.UserUpdatedTime),
			Todo:      n.IsTodo != 0,
			Conflict:  n.IsConflict != 0,
		}
		html, err := v.fetcher.ConvertMarkdown(ctx, n.Body)
		if err != nil {
			v.logger.Error("unable to convert note body to html", "jid", n.JID, "err", err)
			data.ConvertFail = true
			data.RawBody = n.Body
		} else {
			// produced by the backend's markdown renderer
			data.Body = template.HTML(html) //nolint:gosec
		}
	}

	var buf bytes.Buffer
	if err := viewerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render notes page: %w", err)
	}
	return buf.Bytes(), nil
}

// Joplin 时间戳为毫秒.
func formatMillis(f timefmt.Formatter, ms int64) string {
	if ms <= 0 {
		return ""
	}
	return f.Format(ms / 1000)
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`{{define "folder"}}<li class="folder {{.Status}}" data-jid="{{.JID}}">
{{- if .JID}}<a href="/notes/{{.JID}}">{{.Title}}</a>{{else}}<span>{{.Title}}</span>{{end}}
{{- if .NoteCount}} <span class="note-count">{{.NoteCount}}</span>{{end}}
{{- if .Children}}<ul>{{range .Children}}{{template "folder" .}}{{end}}</ul>{{end -}}
</li>{{end -}}
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Notes</title></head>
<body>
<nav class="folders"><ul>{{template "folder" .Root}}</ul></nav>
<table class="notes">
<thead><tr><th>Note</th></tr></thead>
<tbody>
{{- range .Notes}}
<tr{{if eq .JID $.CurrentJID}} class="current"{{end}}><td><a href="/notes/{{.JID}}">{{.Title}}</a></td></tr>
{{- end}}
</tbody>
</table>
{{- with .Note}}
<article class="note" data-jid="{{.JID}}">
<h2>{{.Title}}</h2>
<dl class="meta">
<dt>Created</dt><dd class="created">{{.Created}}</dd>
<dt>Updated</dt><dd class="updated">{{.Updated}}</dd>
{{- if .SourceURL}}
<dt>Source</dt><dd class="source"><a href="{{.SourceURL}}">{{.SourceURL}}</a></dd>
{{- end}}
{{- if .Todo}}<dt>Todo</dt><dd class="todo">yes</dd>{{end}}
{{- if .Conflict}}<dt>Conflict</dt><dd class="conflict">yes</dd>{{end}}
</dl>
{{- if $.ConvertFail}}
<pre class="body raw">{{$.RawBody}}</pre>
{{- else}}
<div class="body">{{$.Body}}</div>
{{- end}}
</article>
{{- end}}
</body>
</html>
`))
