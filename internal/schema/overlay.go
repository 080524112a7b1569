package schema

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Overlay is a vendor vocabulary extension file: canonical field name to
// additional header synonyms. Adding support for a new accounting tool means
// shipping an overlay, not a rebuild.
type Overlay map[string][]string

// LoadOverlay reads an overlay from r and merges it into the schema.
// Entries for unknown fields are skipped with a warning.
func (s *Schema) LoadOverlay(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return eris.Wrap(err, "schema: read overlay")
	}

	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return eris.Wrap(err, "schema: unmarshal overlay")
	}

	for name, synonyms := range overlay {
		f := Field(name)
		if !Known(f) {
			zap.L().Warn("schema: overlay references unknown field",
				zap.String("field", name),
			)
			continue
		}
		s.Extend(f, synonyms...)
	}

	return nil
}

// LoadOverlayFile merges the overlay at path into the schema.
func (s *Schema) LoadOverlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "schema: open overlay %s", path)
	}
	defer f.Close()
	return s.LoadOverlay(f)
}
