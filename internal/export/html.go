package export

import (
	"html/template"
	"io"
	"strings"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/internal/render"
)

// HTMLExporter exports a conversation as a standalone HTML page. Message text is
// rendered from Markdown and sanitized; only resolved, safe media get tags.
type HTMLExporter struct {
	// MediaBase is prepended to resolved media paths, e.g. "../" or "/api/datasets/x/files/"
	MediaBase string
}

var pageTemplate = template.Must(template.New("conversation").Funcs(template.FuncMap{
	"time": internal.FormatEpoch,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;line-height:1.5}
.msg{border-top:1px solid #ddd;padding:1rem 0}
.role{font-weight:600;text-transform:capitalize}
.meta{color:#666;font-size:.85em}
.media img,.media video{max-width:100%}
.missing{color:#a33;font-style:italic}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.ID}}{{with time .UpdateTime}} · updated {{.}}{{end}}</p>
{{range .Messages}}<div class="msg" id="{{.ID}}">
<div><span class="role">{{.Role}}</span>{{with .Model}} <span class="meta">{{.}}</span>{{end}}{{with time .Created}} <span class="meta">{{.}}</span>{{end}}</div>
{{.HTML}}
{{range .Media}}<div class="media">{{if .Missing}}<p class="missing">{{.Kind}} attachment not found</p>{{else if eq .Kind "image"}}<img src="{{.Src}}" alt="{{.Alt}}" loading="lazy">{{else if eq .Kind "audio"}}<audio controls src="{{.Src}}"></audio>{{else}}<video controls src="{{.Src}}"></video>{{end}}</div>
{{end}}</div>
{{end}}</body>
</html>
`))

type htmlPage struct {
	ID         string
	Title      string
	UpdateTime *float64
	Messages   []htmlMessage
}

type htmlMessage struct {
	ID      string
	Role    string
	Model   string
	Created *float64
	HTML    template.HTML
	Media   []htmlMedia
}

type htmlMedia struct {
	Kind    string
	Src     template.URL
	Alt     string
	Missing bool
}

// Export exports a conversation to HTML
func (e *HTMLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	page := htmlPage{ID: conv.ID, Title: conv.Title, UpdateTime: conv.UpdateTime}
	for _, msg := range conv.Messages {
		hm := htmlMessage{
			ID:      msg.ID,
			Role:    msg.Role,
			Model:   msg.Meta.ModelSlug,
			Created: msg.CreateTime,
			// sanitized by render.Markdown
			HTML: template.HTML(render.Markdown(msg.Text)),
		}
		for _, m := range msg.Media {
			hm.Media = append(hm.Media, e.media(m))
		}
		page.Messages = append(page.Messages, hm)
	}
	return pageTemplate.Execute(w, page)
}

func (e *HTMLExporter) media(m internal.MediaItem) htmlMedia {
	out := htmlMedia{Kind: string(internal.ClassifyMedia(m.Src, deref(m.Mime))), Alt: m.Alt}
	if out.Kind == string(internal.MediaOther) {
		out.Kind = string(m.Kind)
	}
	if !m.Renderable() {
		out.Missing = true
		return out
	}
	src := m.Src
	if e.MediaBase != "" && !strings.Contains(src, "://") && !strings.HasPrefix(src, "/") {
		src = e.MediaBase + src
	}
	if !internal.IsSafeSrc(src) {
		out.Missing = true
		return out
	}
	// checked by IsSafeSrc
	out.Src = template.URL(src)
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
