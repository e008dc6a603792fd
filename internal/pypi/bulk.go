package pypi

import (
	"context"
	"fmt"
	"sync"

	"github.com/git-pkgs/pypi/client"
	"github.com/git-pkgs/pypi/internal/core"
)

const defaultConcurrency = 15

// FetchPackageFromPURL fetches the package view for a pypi PURL. The
// repository_url qualifier selects the index; without it DefaultURL is used.
func FetchPackageFromPURL(ctx context.Context, purl string, c *client.Client) (*core.Package, error) {
	idx, p, err := NewFromPURL(purl, c)
	if err != nil {
		return nil, err
	}
	return idx.FetchPackage(ctx, p.Name, p.Version)
}

// NewFromPURL returns the Index a PURL points at together with the parsed PURL.
func NewFromPURL(purl string, c *client.Client, opts ...Option) (*Index, *core.PURL, error) {
	p, err := core.ParsePURL(purl)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing purl %q: %w", purl, err)
	}
	return New(p.IndexURL(), c, opts...), p, nil
}

// BulkFetchDescriptions fetches the latest description of every name in
// parallel, at most concurrency at a time. Names that fail are omitted from
// the result; the returned map is keyed by the name as given.
func BulkFetchDescriptions(ctx context.Context, idx *Index, names []string, concurrency int) map[string]*core.PackageDescription {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make(map[string]*core.PackageDescription)
	var mu sync.Mutex
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			desc, err := idx.FetchDescription(ctx, n, "")
			if err == nil {
				mu.Lock()
				results[n] = desc
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()
	return results
}

// BulkFetchPackages fetches the package view of every PURL in parallel.
// PURLs that fail are omitted from the result.
func BulkFetchPackages(ctx context.Context, purls []string, c *client.Client) map[string]*core.Package {
	results := make(map[string]*core.Package)
	var mu sync.Mutex
	sem := make(chan struct{}, defaultConcurrency)
	var wg sync.WaitGroup

	for _, purl := range purls {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			pkg, err := FetchPackageFromPURL(ctx, p, c)
			if err == nil {
				mu.Lock()
				results[p] = pkg
				mu.Unlock()
			}
		}(purl)
	}

	wg.Wait()
	return results
}
