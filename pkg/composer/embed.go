package composer

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DocumentTemplate is the name of the page template rendered by Compose.
const DocumentTemplate = "document"

// EmbeddedTemplates returns the bundled page templates. Pass a filesystem
// holding a "document.tpl" to gotemplate.WithFS ahead of this one to override
// the layout.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
