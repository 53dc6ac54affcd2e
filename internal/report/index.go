// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"path/filepath"

	"github.com/google/safehtml/template"
	"go.uber.org/zap"
)

const indexText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Tables}}
<h2>Tables</h2>
<ul>
{{- range .Tables}}
<li><a href="{{.Name}}">{{.Title}}</a> ({{.Name}})</li>
{{- end}}
</ul>
{{- end}}
{{- if .Charts}}
<h2>Charts</h2>
{{- range .Charts}}
<figure>
{{- if .Image}}
<a href="{{.Name}}"><img src="{{.Name}}" alt="{{.Title}}" width="640"></a>
{{- else}}
<a href="{{.Name}}">{{.Name}}</a>
{{- end}}
<figcaption>{{.Title}}</figcaption>
</figure>
{{- end}}
{{- end}}
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexText))

type indexEntry struct {
	Name, Title string
	Image       bool
}

// Index writes IndexPage linking every table and chart written so
// far.
func (w *Writer) Index(title string) error {
	data := struct {
		Title          string
		Tables, Charts []indexEntry
	}{Title: title}
	for _, a := range w.artifacts {
		e := indexEntry{Name: filepath.ToSlash(a.Name), Title: a.Title}
		if e.Title == "" {
			e.Title = e.Name
		}
		if !a.Chart {
			data.Tables = append(data.Tables, e)
			continue
		}
		// Browsers show PDF charts only as links.
		e.Image = filepath.Ext(a.Name) != ".pdf"
		data.Charts = append(data.Charts, e)
	}

	file, err := w.create(IndexPage)
	if err != nil {
		return err
	}
	if err := indexTemplate.Execute(file, data); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	w.log().Info("Wrote index", zap.String("path", file.Name()), zap.Int("entries", len(w.artifacts)))
	return nil
}
