// Package assets carries the content set compiled into the binary, used
// when no content directory is configured.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed content
var contentFS embed.FS

// Content returns the bundled content directory rooted at its catalog.json.
func Content() fs.FS {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
