// Package pypi provides the client for a Python package index such as pypi.org.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/git-pkgs/pypi/client"
	"github.com/git-pkgs/pypi/fetch"
	"github.com/git-pkgs/pypi/internal/archive"
	"github.com/git-pkgs/pypi/internal/core"
	"github.com/git-pkgs/pypi/internal/jsonapi"
	"github.com/git-pkgs/pypi/internal/rss"
	"github.com/git-pkgs/pypi/internal/view"
)

const (
	DefaultURL = "https://pypi.org"

	NewestPackagesFeedURL = DefaultURL + newestPackagesPath
	PackageUpdatesFeedURL = DefaultURL + packageUpdatesPath

	newestPackagesPath = "/rss/packages.xml"
	packageUpdatesPath = "/rss/updates.xml"
)

// Index talks to one package index. It is safe for concurrent use.
type Index struct {
	baseURL string
	client  *client.Client
	logger  *zap.Logger
	urls    *URLs

	fetcherOnce sync.Once
	fetcher     fetch.FetcherInterface
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger requests are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(i *Index) {
		i.logger = l
	}
}

// WithFetcher sets the fetcher used to download distribution files.
func WithFetcher(f fetch.FetcherInterface) Option {
	return func(i *Index) {
		i.fetcher = f
	}
}

// New creates an Index rooted at baseURL.
// If baseURL is empty, DefaultURL is used. If c is nil, client.DefaultClient() is used.
func New(baseURL string, c *client.Client, opts ...Option) *Index {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if c == nil {
		c = client.DefaultClient()
	}
	i := &Index{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
		logger:  zap.NewNop(),
	}
	i.urls = &URLs{baseURL: i.baseURL}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// distributionFetcher returns the configured fetcher, creating the default
// breaker-wrapped one on first use.
func (i *Index) distributionFetcher() fetch.FetcherInterface {
	i.fetcherOnce.Do(func() {
		if i.fetcher == nil {
			i.fetcher = fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(fetch.WithUserAgent(i.client.UserAgent())))
		}
	})
	return i.fetcher
}

// BaseURL returns the index root without a trailing slash.
func (i *Index) BaseURL() string {
	return i.baseURL
}

// URLs returns the URL builder for this index.
func (i *Index) URLs() client.URLBuilder {
	return i.urls
}

// FetchFeed downloads and parses the RSS feed at feedURL.
func (i *Index) FetchFeed(ctx context.Context, feedURL string) ([]core.FeedEntry, error) {
	i.logger.Debug("fetching feed", zap.String("url", feedURL))

	content, err := i.client.GetText(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	entries, err := rss.ParseFeed(content)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	i.logger.Debug("parsed feed", zap.String("url", feedURL), zap.Int("entries", len(entries)))
	return entries, nil
}

// NewestPackages returns the index's feed of newly created projects.
func (i *Index) NewestPackages(ctx context.Context) ([]core.FeedEntry, error) {
	return i.FetchFeed(ctx, i.baseURL+newestPackagesPath)
}

// PackageUpdates returns the index's feed of newly uploaded releases.
func (i *Index) PackageUpdates(ctx context.Context) ([]core.FeedEntry, error) {
	return i.FetchFeed(ctx, i.baseURL+packageUpdatesPath)
}

// FetchDescription returns the package description of name. An empty
// version asks for the latest release.
//
// A 404 becomes *core.PackageNotFoundError carrying the name and version
// that were asked for; any other transport failure is returned as is.
func (i *Index) FetchDescription(ctx context.Context, name, version string) (*core.PackageDescription, error) {
	url := i.urls.JSON(name, version)
	i.logger.Debug("fetching description",
		zap.String("name", name),
		zap.String("version", version),
		zap.String("url", url),
	)

	body, err := i.client.GetBody(ctx, url)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, &core.PackageNotFoundError{Name: name, Version: version}
		}
		return nil, err
	}

	desc, err := jsonapi.ParseDescription(body)
	if err != nil {
		i.logger.Debug("invalid description", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return desc, nil
}

// FetchPackage returns the simplified view of name at version.
func (i *Index) FetchPackage(ctx context.Context, name, version string) (*core.Package, error) {
	desc, err := i.FetchDescription(ctx, name, version)
	if err != nil {
		return nil, err
	}
	return view.Project(desc), nil
}

// FetchDependencies returns the requirements declared by name at version.
func (i *Index) FetchDependencies(ctx context.Context, name, version string) ([]core.Dependency, error) {
	desc, err := i.FetchDescription(ctx, name, version)
	if err != nil {
		return nil, err
	}
	return desc.Info.Dependencies(), nil
}

// FetchDistribution downloads a release file and checks it against the
// digests the index published for it.
func (i *Index) FetchDistribution(ctx context.Context, file core.ReleaseFile) ([]byte, error) {
	i.logger.Debug("downloading distribution",
		zap.String("filename", file.Filename),
		zap.String("url", file.URL),
		zap.Int64("size", file.Size),
	)

	data, err := fetch.ReadAll(ctx, i.distributionFetcher(), file.URL)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", file.Filename, core.ErrNotFound)
		}
		return nil, fmt.Errorf("downloading %s: %w", file.Filename, err)
	}

	if err := file.Digests.Verify(data); err != nil {
		return nil, fmt.Errorf("%s: %w", file.Filename, err)
	}
	return data, nil
}

// ReadDistribution downloads a release file and returns its regular members
// keyed by path.
func (i *Index) ReadDistribution(ctx context.Context, file core.ReleaseFile) (map[string]string, error) {
	data, err := i.FetchDistribution(ctx, file)
	if err != nil {
		return nil, err
	}
	members, err := archive.ReadMembers(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Filename, err)
	}
	return members, nil
}
