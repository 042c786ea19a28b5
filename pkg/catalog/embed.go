package catalog

import (
	"embed"
	"io/fs"
)

//go:embed catalogs/*
var embeddedCatalogs embed.FS

// EmbeddedFS returns the bundled catalogs, one file per document kind.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalogs")
	if err != nil {
		panic(err)
	}
	return sub
}
