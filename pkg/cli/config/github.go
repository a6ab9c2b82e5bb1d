package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	githubinfra "github.com/m-mizutani/vendorfetch/pkg/infra/github"
)

// GitHub holds configuration for the GitHub contents source
type GitHub struct {
	Owner          string
	Repo           string
	Ref            string
	Dir            string
	APIURL         string
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKey     string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Repository owner when --source=github",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository name when --source=github",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-ref",
			Usage:       "Branch, tag or commit to read from (default branch if empty)",
			Destination: &c.Ref,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "github-dir",
			Usage:       "Directory in the repository that manifest paths are relative to",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_DIR"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key, PEM content or path to a PEM file",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("VENDORFETCH_GITHUB_PRIVATE_KEY"),
		},
	}
}

// useApp reports whether GitHub App authentication is configured
func (c *GitHub) useApp() bool {
	return c.AppID != 0 || c.InstallationID != 0 || c.PrivateKey != ""
}

// privateKey returns the PEM bytes, reading them from disk when PrivateKey is a path
func (c *GitHub) privateKey() ([]byte, error) {
	if info, err := os.Stat(c.PrivateKey); err == nil && !info.IsDir() {
		data, err := os.ReadFile(c.PrivateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key")
		}
		return data, nil
	}
	return []byte(c.PrivateKey), nil
}

// Build creates the GitHub fetcher
func (c *GitHub) Build() (*githubinfra.Client, error) {
	repo := githubinfra.Repository{
		Owner: c.Owner,
		Repo:  c.Repo,
		Ref:   c.Ref,
		Dir:   c.Dir,
	}

	var (
		client *githubinfra.Client
		err    error
	)
	if c.useApp() {
		if c.AppID == 0 || c.InstallationID == 0 || c.PrivateKey == "" {
			return nil, goerr.New("GitHub App authentication requires app ID, installation ID and private key")
		}
		key, keyErr := c.privateKey()
		if keyErr != nil {
			return nil, keyErr
		}
		client, err = githubinfra.NewAppClient(repo, c.AppID, c.InstallationID, key)
	} else {
		client, err = githubinfra.NewClient(repo, c.Token)
	}
	if err != nil {
		return nil, err
	}

	if c.APIURL != "" {
		return client.WithBaseURL(c.APIURL)
	}
	return client, nil
}
