package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// subFS roots an embedded tree at dir. Panics if dir is not embedded.
func subFS(fsys embed.FS, dir string) http.FileSystem {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

// templatesFS serves page templates by their name, e.g. "blog/detail.gohtml".
func templatesFS() http.FileSystem {
	return subFS(embeddedTemplates, "templates")
}

// staticFS serves css, js and images below /static.
func staticFS() http.FileSystem {
	return subFS(embeddedStaticFiles, "static")
}
