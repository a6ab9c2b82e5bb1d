package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vendorfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
	"github.com/m-mizutani/vendorfetch/pkg/infra/fs"
	"github.com/m-mizutani/vendorfetch/pkg/infra/gitiles"
	"github.com/m-mizutani/vendorfetch/pkg/infra/manifest"
)

// Source kinds
const (
	SourceGitiles = "gitiles"
	SourceGitHub  = "github"
)

// Source holds configuration of what to fetch and where to put it
type Source struct {
	Manifest       string
	BaseURL        string
	Root           string
	Kind           string
	RequestTimeout time.Duration
}

// Flags returns CLI flags for source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Manifest TOML file (built-in manifest if empty)",
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("VENDORFETCH_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Override the manifest base URL",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("VENDORFETCH_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "root",
			Usage:       "Local directory the manifest paths are mirrored under",
			Value:       ".",
			Destination: &c.Root,
			Sources:     cli.EnvVars("VENDORFETCH_ROOT"),
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Remote host type (gitiles, github)",
			Value:       SourceGitiles,
			Destination: &c.Kind,
			Sources:     cli.EnvVars("VENDORFETCH_SOURCE"),
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Timeout of a single fetch attempt",
			Value:       gitiles.DefaultTimeout,
			Destination: &c.RequestTimeout,
			Sources:     cli.EnvVars("VENDORFETCH_REQUEST_TIMEOUT"),
		},
	}
}

// LoadManifest returns the configured manifest with the base URL override applied
func (c *Source) LoadManifest() (*model.Manifest, error) {
	var (
		m   *model.Manifest
		err error
	)
	if c.Manifest != "" {
		m, err = manifest.Load(c.Manifest)
	} else {
		m, err = manifest.Default()
	}
	if err != nil {
		return nil, err
	}

	if c.BaseURL != "" {
		return manifest.WithBaseURL(m, c.BaseURL)
	}
	return m, nil
}

// Storage returns the persistence layer rooted at Root
func (c *Source) Storage() *fs.Storage {
	return fs.NewOS(c.Root)
}

// Fetcher returns the single-attempt fetcher for the configured host type
func (c *Source) Fetcher(m *model.Manifest, gh *GitHub) (interfaces.Fetcher, error) {
	switch c.Kind {
	case SourceGitiles:
		return gitiles.NewClient(m.BaseURL(), gitiles.WithTimeout(c.RequestTimeout)), nil
	case SourceGitHub:
		client, err := gh.Build()
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, goerr.New("unknown source type", goerr.V("source", c.Kind))
	}
}
