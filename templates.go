package formflow

import (
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/schemas"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the default stylesheet so applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formflow.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// LoadRegistry builds a sealed registry from the schema files in fsys,
// optionally next to the built-in schemas.
func LoadRegistry(fsys fs.FS, builtins bool) (*registry.Registry, error) {
	reg := registry.New()
	if builtins {
		if err := schemas.Register(reg); err != nil {
			return nil, err
		}
	}
	if err := reg.LoadFS(fsys); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}
