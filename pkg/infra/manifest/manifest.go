package manifest

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

//go:embed default.toml
var defaultManifest []byte

// document is the TOML layout of a manifest file
type document struct {
	BaseURL string   `toml:"base_url"`
	Files   []string `toml:"files"`
}

// Default returns the built-in manifest
func Default() (*model.Manifest, error) {
	m, err := Parse(defaultManifest)
	if err != nil {
		return nil, goerr.Wrap(err, "built-in manifest is invalid")
	}
	return m, nil
}

// Load reads and parses a manifest file
func Load(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest",
			goerr.T(types.ErrTagManifest), goerr.V("path", path))
	}

	m, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load manifest", goerr.V("path", path))
	}
	return m, nil
}

// Parse decodes a TOML manifest document. Unknown keys are rejected.
func Parse(data []byte) (*model.Manifest, error) {
	var doc document
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse manifest", goerr.T(types.ErrTagManifest))
	}

	return model.NewManifest(doc.BaseURL, doc.Files)
}

// WithBaseURL returns a copy of m using baseURL instead of the manifest's own
func WithBaseURL(m *model.Manifest, baseURL string) (*model.Manifest, error) {
	paths := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		paths = append(paths, e.String())
	}
	return model.NewManifest(baseURL, paths)
}
