// Package webui embeds the browser front end of the camkit server: a single
// page that uploads a container, edits its document and downloads the result.
package webui

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

// FS returns the embedded static files rooted at the static directory.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed path is fixed at build time
		panic(err)
	}
	return sub
}

// Index returns the editor page.
func Index() []byte {
	b, err := fs.ReadFile(FS(), "index.html")
	if err != nil {
		panic(err)
	}
	return b
}
