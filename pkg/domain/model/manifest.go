package model

import (
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

// ManifestEntry is a relative, slash-separated path. It identifies both the
// remote resource (joined with the manifest base URL) and the local destination.
type ManifestEntry string

// String returns the entry path
func (e ManifestEntry) String() string {
	return string(e)
}

// Validate rejects empty, absolute and root-escaping paths
func (e ManifestEntry) Validate() error {
	p := string(e)
	if p == "" {
		return goerr.New("empty manifest entry", goerr.T(types.ErrTagManifest))
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return goerr.New("manifest entry must be a relative slash-separated path",
			goerr.T(types.ErrTagManifest), goerr.V("entry", p))
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return goerr.New("manifest entry escapes the destination root",
			goerr.T(types.ErrTagManifest), goerr.V("entry", p))
	}
	return nil
}

// Manifest is an immutable ordered list of entries sharing one base URL
type Manifest struct {
	baseURL string
	entries []ManifestEntry
}

// NewManifest validates and copies paths into a Manifest. Duplicate paths are rejected.
func NewManifest(baseURL string, paths []string) (*Manifest, error) {
	if baseURL == "" {
		return nil, goerr.New("manifest base URL is empty", goerr.T(types.ErrTagManifest))
	}

	seen := make(map[string]struct{}, len(paths))
	entries := make([]ManifestEntry, 0, len(paths))
	for _, p := range paths {
		entry := ManifestEntry(p)
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		key := path.Clean(p)
		if _, ok := seen[key]; ok {
			return nil, goerr.New("duplicate manifest entry",
				goerr.T(types.ErrTagManifest), goerr.V("entry", p))
		}
		seen[key] = struct{}{}
		entries = append(entries, entry)
	}

	return &Manifest{
		baseURL: baseURL,
		entries: entries,
	}, nil
}

// BaseURL returns the URL prefix every entry path is appended to
func (m *Manifest) BaseURL() string {
	return m.baseURL
}

// Entries returns a copy of the entries in download order
func (m *Manifest) Entries() []ManifestEntry {
	out := make([]ManifestEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.entries)
}
