package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html app.css
var content embed.FS

// StaticFS exposes the embedded dashboard page and stylesheet.
func StaticFS() fs.FS {
	return content
}

// Index returns the dashboard page bytes, served at "/".
func Index() []byte {
	b, _ := content.ReadFile("index.html")
	return b
}
