package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates holds all parsed templates
type Templates struct {
	index *template.Template
	job   *template.Template
	tags  *template.Template
}

// StaticFS returns the embedded static files filesystem
func StaticFS() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}

// ParseTemplates parses all templates and returns a Templates struct
func ParseTemplates() (*Templates, error) {
	// Parse base template
	base, err := template.New("base.html").ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, err
	}

	// Parse each page template by cloning base and adding the page
	index, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	job, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/job.html")
	if err != nil {
		return nil, err
	}

	tags, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/tags.html")
	if err != nil {
		return nil, err
	}

	return &Templates{
		index: index,
		job:   job,
		tags:  tags,
	}, nil
}
