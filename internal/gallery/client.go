// Package gallery lists a GitHub user's public repositories, probes each one
// for a preview image and slices the result into display pages.
package gallery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/diploma-scanner/internal/fetch"
	"github.com/jonathan/diploma-scanner/internal/metrics"
	"github.com/jonathan/diploma-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Defaults for Config.
const (
	DefaultOwner            = "bedimcode"
	DefaultAPIBase          = "https://api.github.com"
	DefaultRawBase          = "https://raw.githubusercontent.com"
	DefaultFetchPageSize    = 100
	DefaultDisplayPageSize  = 8
	DefaultConcurrency      = 8
	DefaultMaxPages         = 100
	previewFile             = "preview.png"
	githubAcceptHeaderValue = "application/vnd.github+json"
)

// previewBranches are probed in order; the first one holding a preview wins.
var previewBranches = []string{"main", "master"}

// Config selects whose repositories are listed and where from.
type Config struct {
	Owner         string `json:"owner" mapstructure:"owner"`
	APIBase       string `json:"api_base" mapstructure:"api_base" validate:"omitempty,url"`
	RawBase       string `json:"raw_base" mapstructure:"raw_base" validate:"omitempty,url"`
	FetchPageSize int    `json:"fetch_page_size" mapstructure:"fetch_page_size" validate:"gte=0,lte=100"`
	Concurrency   int    `json:"concurrency" mapstructure:"concurrency" validate:"gte=0,lte=64"`
	MaxPages      int    `json:"max_pages" mapstructure:"max_pages" validate:"gte=0"`
}

// DefaultConfig returns the configuration for the bedimcode gallery.
func DefaultConfig() Config {
	return Config{
		Owner:         DefaultOwner,
		APIBase:       DefaultAPIBase,
		RawBase:       DefaultRawBase,
		FetchPageSize: DefaultFetchPageSize,
		Concurrency:   DefaultConcurrency,
		MaxPages:      DefaultMaxPages,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Owner == "" {
		c.Owner = d.Owner
	}
	if c.APIBase == "" {
		c.APIBase = d.APIBase
	}
	if c.RawBase == "" {
		c.RawBase = d.RawBase
	}
	if c.FetchPageSize <= 0 {
		c.FetchPageSize = d.FetchPageSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.MaxPages <= 0 {
		c.MaxPages = d.MaxPages
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	c.RawBase = strings.TrimRight(c.RawBase, "/")
	return c
}

// Error reports a failed gallery operation.
type Error struct {
	Op    string
	Page  int
	Cause error
}

func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("gallery %s failed on page %d: %v", e.Op, e.Page, e.Cause)
	}
	return fmt.Sprintf("gallery %s failed: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RawRepo is the subset of the GitHub repository object the gallery reads.
type RawRepo struct {
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Client builds the repository gallery. The zero value is not usable; use NewClient.
type Client struct {
	cfg    Config
	fetch  *fetch.Options
	logger *zap.Logger
}

// NewClient creates a Client. A nil fetch options or logger gets a default.
func NewClient(cfg Config, opts *fetch.Options, logger *zap.Logger) *Client {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg.withDefaults(), fetch: opts, logger: logger}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// ListRepos fetches every page of the owner's repositories, stopping at the
// first empty page.
func (c *Client) ListRepos(ctx context.Context) ([]RawRepo, error) {
	opts := *c.fetch
	opts.Headers = map[string]string{"Accept": githubAcceptHeaderValue}
	for k, v := range c.fetch.Headers {
		opts.Headers[k] = v
	}

	var all []RawRepo
	for page := 1; ; page++ {
		if page > c.cfg.MaxPages {
			return nil, &Error{Op: "list repositories", Page: page, Cause: fmt.Errorf("exceeded %d pages", c.cfg.MaxPages)}
		}

		pageURL := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d",
			c.cfg.APIBase, url.PathEscape(c.cfg.Owner), c.cfg.FetchPageSize, page)

		var batch []RawRepo
		err := fetch.JSON(ctx, pageURL, &opts, &batch)
		metrics.ObserveGalleryRequest("list", err)
		if err != nil {
			return nil, &Error{Op: "list repositories", Page: page, Cause: err}
		}
		if len(batch) == 0 {
			break
		}

		c.logger.Debug("fetched repository page",
			zap.String("owner", c.cfg.Owner),
			zap.Int("page", page),
			zap.Int("count", len(batch)))
		all = append(all, batch...)
	}
	return all, nil
}

// AttachPreviews converts raw repositories to gallery entries, probing each
// for a preview image concurrently. Index is 1-based in the order of raw.
func (c *Client) AttachPreviews(ctx context.Context, raw []RawRepo) ([]types.Repo, error) {
	repos := make([]types.Repo, len(raw))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for i, r := range raw {
		g.Go(func() error {
			repos[i] = types.Repo{
				Index:       i + 1,
				Name:        r.Name,
				URL:         r.HTMLURL,
				Preview:     c.probePreview(gCtx, r),
				Description: describe(r.Description),
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "probe previews", Cause: err}
	}
	return repos, nil
}

// probePreview returns the URL of the first branch holding a preview image.
// A failed probe counts as no preview.
func (c *Client) probePreview(ctx context.Context, r RawRepo) *string {
	owner := r.Owner.Login
	if owner == "" {
		owner = c.cfg.Owner
	}
	for _, branch := range previewBranches {
		previewURL := fmt.Sprintf("%s/%s/%s/%s/%s", c.cfg.RawBase, owner, r.Name, branch, previewFile)
		status, err := fetch.Head(ctx, previewURL, c.fetch)
		metrics.ObserveGalleryRequest("probe", err)
		if err != nil {
			c.logger.Debug("preview probe failed", zap.String("url", previewURL), zap.Error(err))
			continue
		}
		if fetch.IsSuccess(status) {
			return &previewURL
		}
	}
	return nil
}

// Gallery lists the owner's repositories and attaches previews.
func (c *Client) Gallery(ctx context.Context) ([]types.Repo, error) {
	start := time.Now()

	raw, err := c.ListRepos(ctx)
	if err != nil {
		return nil, err
	}
	repos, err := c.AttachPreviews(ctx, raw)
	if err != nil {
		return nil, err
	}

	metrics.ObserveGalleryBuild(time.Since(start))
	c.logger.Info("gallery built",
		zap.String("owner", c.cfg.Owner),
		zap.Int("repos", len(repos)),
		zap.Duration("duration", time.Since(start)))
	return repos, nil
}

// describe falls back only for a missing or empty description; blank text is kept.
func describe(d *string) string {
	if d == nil || *d == "" {
		return types.NoDescription
	}
	return *d
}
