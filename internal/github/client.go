// Package github reads expression files from GitHub repositories.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

// OwnerType represents the type of account owner (User or Organization).
type OwnerType string

const (
	// OwnerTypeUser represents a user account.
	OwnerTypeUser OwnerType = "User"
	// OwnerTypeOrganization represents an organization account.
	OwnerTypeOrganization OwnerType = "Organization"

	pageSize = 100
)

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	AuthToken    string
	CacheDir     string
	CacheTTL     time.Duration
	DisableCache bool
}

// Client wraps the go-gh REST client.
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a new GitHub API client with the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	apiOpts := api.ClientOptions{
		AuthToken:   opts.AuthToken,
		CacheDir:    opts.CacheDir,
		CacheTTL:    opts.CacheTTL,
		EnableCache: !opts.DisableCache,
	}

	rest, err := api.NewRESTClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &Client{
		rest: rest,
	}, nil
}

// GetOwnerType determines if a name is a "User" or "Organization".
func (c *Client) GetOwnerType(ctx context.Context, name string) (OwnerType, error) {
	var result struct {
		Type OwnerType `json:"type"`
	}

	endpoint := fmt.Sprintf("users/%s", name)
	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &result)
	if err != nil {
		return "", fmt.Errorf("failed to get owner type for %s: %w", name, err)
	}

	return result.Type, nil
}

// ListRepos returns the non-empty, non-archived source repositories of a
// user or organization.
func (c *Client) ListRepos(ctx context.Context, name string) ([]Repository, error) {
	accountType, err := c.GetOwnerType(ctx, name)
	if err != nil {
		return nil, err
	}

	var baseEndpoint, typeParam string
	if accountType == OwnerTypeOrganization {
		baseEndpoint, typeParam = fmt.Sprintf("orgs/%s/repos", name), "sources"
	} else {
		baseEndpoint, typeParam = fmt.Sprintf("users/%s/repos", name), "owner"
	}

	var repos []Repository
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s?type=%s&per_page=%d&page=%d",
			baseEndpoint, typeParam, pageSize, page)

		var batch []Repository
		if err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &batch); err != nil {
			return nil, fmt.Errorf("failed to list repos for %s: %w", name, err)
		}

		for _, repo := range batch {
			if repo.Size == 0 || repo.Archived || repo.Fork || repo.DefaultBranch == "" {
				continue
			}
			repos = append(repos, repo)
		}

		if len(batch) < pageSize {
			break
		}
	}

	return repos, nil
}

// GetRepo fetches a single repository.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repository, error) {
	var result Repository

	endpoint := fmt.Sprintf("repos/%s/%s", owner, repo)
	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &result)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get repo %s/%s: %w", owner, repo, err)
	}
	if result.Size == 0 {
		return Repository{}, fmt.Errorf("repository is empty (no commits yet)")
	}

	return result, nil
}

// GetTree fetches the Git tree for a repository recursively.
func (c *Client) GetTree(ctx context.Context, repo Repository) (*TreeResponse, error) {
	var tree TreeResponse

	endpoint := fmt.Sprintf("repos/%s/%s/git/trees/%s?recursive=1",
		repo.Owner, repo.Name, url.PathEscape(repo.TreeRef()))

	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for %s: %w", repo.FullName, err)
	}

	return &tree, nil
}

// GetBlob fetches and decodes a file's contents by blob SHA.
func (c *Client) GetBlob(ctx context.Context, repo Repository, sha string) ([]byte, error) {
	var blob blobResponse

	endpoint := fmt.Sprintf("repos/%s/%s/git/blobs/%s", repo.Owner, repo.Name, sha)
	if err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &blob); err != nil {
		return nil, fmt.Errorf("failed to get blob %s in %s: %w", sha, repo.FullName, err)
	}

	switch blob.Encoding {
	case "base64":
		// The API wraps base64 content at 60 columns.
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode blob %s in %s: %w", sha, repo.FullName, err)
		}
		return data, nil
	case "utf-8", "":
		return []byte(blob.Content), nil
	default:
		return nil, fmt.Errorf("unsupported blob encoding %q", blob.Encoding)
	}
}
