package site

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static/*
var staticFS embed.FS

// FS returns the embedded front-end rooted at static/.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}

// Dir returns the front-end served from dir on disk, or the embedded copy
// when dir is empty.
func Dir(dir string) fs.FS {
	if dir == "" {
		return FS()
	}
	return os.DirFS(dir)
}
