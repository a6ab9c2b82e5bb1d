package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
	"github.com/m-mizutani/vendorfetch/pkg/utils/textenc"
)

// Repository identifies the repository and ref that manifest paths are resolved against
type Repository struct {
	Owner string
	Repo  string
	Ref   string // Branch, tag or commit SHA. Empty means the default branch.
	Dir   string // Optional directory prefix joined before every manifest path
}

// Client fetches single files through the GitHub contents API
type Client struct {
	githubClient *github.Client
	repo         Repository
}

// NewClient creates an unauthenticated client, or a token authenticated one when token is set
func NewClient(repo Repository, token string) (*Client, error) {
	if err := repo.validate(); err != nil {
		return nil, err
	}

	githubClient := github.NewClient(nil)
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	return &Client{
		githubClient: githubClient,
		repo:         repo,
	}, nil
}

// NewAppClient creates a client with GitHub App installation authentication
func NewAppClient(repo Repository, appID, installationID int64, privateKey []byte) (*Client, error) {
	if err := repo.validate(); err != nil {
		return nil, err
	}

	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID), goerr.V("installation_id", installationID))
	}

	return &Client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
		repo:         repo,
	}, nil
}

// WithBaseURL points the client at a GitHub Enterprise or test server
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", baseURL))
	}
	c.githubClient.BaseURL = u
	return c, nil
}

func (r Repository) validate() error {
	if r.Owner == "" || r.Repo == "" {
		return goerr.New("GitHub owner and repository are required",
			goerr.V("owner", r.Owner), goerr.V("repo", r.Repo))
	}
	return nil
}

func (r Repository) resolve(path string) string {
	if r.Dir == "" {
		return path
	}
	return strings.TrimSuffix(r.Dir, "/") + "/" + path
}

// FetchOnce fetches path with one contents API call and decodes its base64 content
func (c *Client) FetchOnce(ctx context.Context, path string) ([]byte, error) {
	repoPath := c.repo.resolve(path)

	file, dir, _, err := c.githubClient.Repositories.GetContents(ctx, c.repo.Owner, c.repo.Repo, repoPath,
		&github.RepositoryContentGetOptions{Ref: c.repo.Ref})
	if err != nil {
		if resp := errorResponse(err); resp != nil {
			transportErr := &types.TransportError{Status: resp.StatusCode}
			if resp.Request != nil {
				transportErr.URL = resp.Request.URL.String()
			}
			return nil, goerr.Wrap(transportErr, "GitHub API returned non-success status",
				goerr.T(types.ErrTagTransport), goerr.V("status", resp.StatusCode), goerr.V("path", repoPath))
		}
		return nil, goerr.Wrap(err, "GitHub contents request failed",
			goerr.T(types.ErrTagNetwork), goerr.V("path", repoPath))
	}

	if file == nil {
		return nil, goerr.New("path is not a file",
			goerr.T(types.ErrTagDecode), goerr.V("path", repoPath), goerr.V("entries", len(dir)))
	}

	if enc := file.GetEncoding(); enc != "base64" {
		return nil, goerr.New("unsupported content encoding",
			goerr.T(types.ErrTagDecode), goerr.V("encoding", enc), goerr.V("path", repoPath))
	}

	// GetContent decodes on its own; the raw field keeps decode failures tagged
	var raw string
	if file.Content != nil {
		raw = *file.Content
	}
	content, err := textenc.Decode(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode GitHub content", goerr.V("path", repoPath))
	}

	return content, nil
}

// errorResponse extracts the HTTP response from the error types go-github
// returns for non-2xx answers. It returns nil for connection-level failures.
func errorResponse(err error) *http.Response {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return respErr.Response
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Response
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Response
	}
	return nil
}
