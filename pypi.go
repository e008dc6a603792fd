// Package pypi retrieves package metadata from the Python Package Index and
// exposes it as validated records instead of raw RSS and JSON payloads.
//
// Basic usage:
//
//	idx := pypi.New("", pypi.DefaultClient())
//
//	desc, err := idx.FetchDescription(context.Background(), "requests", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(desc.Info.Name, desc.Info.Version, len(desc.Files))
//
// The parsers are usable without any network access:
//
//	entry, err := pypi.ParseFeedEntry(map[string]string{
//		"title":   "requests 2.31.0",
//		"link":    "https://pypi.org/project/requests/2.31.0/",
//		"pubDate": "Mon, 22 May 2023 15:12:42 GMT",
//	})
package pypi

import (
	"context"

	"github.com/git-pkgs/purl"

	"github.com/git-pkgs/pypi/client"
	"github.com/git-pkgs/pypi/internal/archive"
	"github.com/git-pkgs/pypi/internal/core"
	"github.com/git-pkgs/pypi/internal/jsonapi"
	ipypi "github.com/git-pkgs/pypi/internal/pypi"
	"github.com/git-pkgs/pypi/internal/rss"
	"github.com/git-pkgs/pypi/internal/view"
)

// Re-export types from internal/core
type (
	// FeedEntry is one item of the newest-packages or package-updates feed.
	FeedEntry = core.FeedEntry

	// PackageDescription is the JSON document the index serves for a package.
	PackageDescription = core.PackageDescription

	// Description is the "info" block of a PackageDescription.
	Description = core.Description

	// DownloadCounts holds the (usually untracked) download counters.
	DownloadCounts = core.DownloadCounts

	// ReleaseFile is one published file of a release.
	ReleaseFile = core.ReleaseFile

	// FileDigests holds the digests published for a release file.
	FileDigests = core.FileDigests

	// VulnerabilityReport is a known vulnerability of the described version.
	VulnerabilityReport = core.VulnerabilityReport

	// Package is the simplified view of a package.
	Package = core.Package

	// Release is one version of a Package.
	Release = core.Release

	// Distribution is one downloadable file of a Release.
	Distribution = core.Distribution

	// Dependency is a requirement parsed from requires_dist.
	Dependency = core.Dependency

	// Scope indicates when a dependency is required.
	Scope = core.Scope
)

// Re-export types from client and internal/pypi
type (
	// Client is the HTTP client used for index APIs. It never retries.
	Client = client.Client

	// URLBuilder constructs URLs for an index.
	URLBuilder = client.URLBuilder

	// Index talks to one package index.
	Index = ipypi.Index

	// IndexOption configures an Index.
	IndexOption = ipypi.Option
)

// Re-export constants
const (
	Runtime     = core.Runtime
	Development = core.Development
	Test        = core.Test
	Build       = core.Build
	Optional    = core.Optional

	NotTracked = core.NotTracked

	DefaultURL            = ipypi.DefaultURL
	NewestPackagesFeedURL = ipypi.NewestPackagesFeedURL
	PackageUpdatesFeedURL = ipypi.PackageUpdatesFeedURL
)

// Re-export errors
var (
	ErrNotFound           = core.ErrNotFound
	ErrMalformedFeedEntry = core.ErrMalformedFeedEntry
	ErrSchemaViolation    = core.ErrSchemaViolation
	ErrDigestMismatch     = core.ErrDigestMismatch
	ErrUnknownArchive     = archive.ErrUnknownFormat
)

// Error types
type (
	HTTPError               = client.HTTPError
	MalformedFeedEntryError = core.MalformedFeedEntryError
	SchemaViolationError    = core.SchemaViolationError
	PackageNotFoundError    = core.PackageNotFoundError
	DigestMismatchError     = core.DigestMismatchError
)

// ParseFeedEntry converts one raw feed item, keyed by element name, into a
// FeedEntry.
func ParseFeedEntry(raw map[string]string) (FeedEntry, error) {
	return rss.ParseEntry(raw)
}

// ParseFeed parses a whole RSS document of the index.
func ParseFeed(content string) ([]FeedEntry, error) {
	return rss.ParseFeed(content)
}

// ParsePackageDescription parses a package description document.
func ParsePackageDescription(data []byte) (*PackageDescription, error) {
	return jsonapi.ParseDescription(data)
}

// ProjectPackage derives the simplified package view from a description.
func ProjectPackage(d *PackageDescription) *Package {
	return view.Project(d)
}

// ReadArchiveMembers returns the regular files of a wheel or sdist, with
// contents decoded as UTF-8 and invalid bytes dropped.
func ReadArchiveMembers(data []byte) (map[string]string, error) {
	return archive.ReadMembers(data)
}

// NormalizeName returns the normalized form of a project name.
func NormalizeName(name string) string {
	return core.NormalizeName(name)
}

// New creates an Index rooted at baseURL.
// If baseURL is empty, DefaultURL is used. If c is nil, DefaultClient() is used.
func New(baseURL string, c *Client, opts ...IndexOption) *Index {
	return ipypi.New(baseURL, c, opts...)
}

// NewNamed creates an Index for a registered index name such as "pypi" or
// "testpypi".
func NewNamed(name string, c *Client, opts ...IndexOption) (*Index, error) {
	baseURL, err := core.IndexURL(name)
	if err != nil {
		return nil, err
	}
	return ipypi.New(baseURL, c, opts...), nil
}

// RegisterIndex adds or replaces a named index.
func RegisterIndex(name, baseURL string) {
	core.Register(name, baseURL)
}

// SupportedIndexes returns the registered index names.
func SupportedIndexes() []string {
	return core.SupportedIndexes()
}

// WithLogger sets the logger an Index reports requests to.
var WithLogger = ipypi.WithLogger

// WithFetcher sets the fetcher an Index downloads distribution files with.
var WithFetcher = ipypi.WithFetcher

// DefaultClient returns a client with a 30s timeout and no retries.
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...ClientOption) *Client {
	return client.NewClient(opts...)
}

// ClientOption configures a Client.
type ClientOption = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithUserAgent sets the User-Agent header.
var WithUserAgent = client.WithUserAgent

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "download", "docs", "purl" and "json".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	return client.BuildURLs(urls, name, version)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:pypi/requests) and version PURLs
// (pkg:pypi/requests@2.31.0).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// FetchPackageFromPURL fetches the package view for a pypi PURL. A
// repository_url qualifier selects a private index.
func FetchPackageFromPURL(ctx context.Context, purl string, c *Client) (*Package, error) {
	return ipypi.FetchPackageFromPURL(ctx, purl, c)
}

// BulkFetchPackages fetches the package view of every PURL in parallel.
// PURLs that fail are omitted from the result.
func BulkFetchPackages(ctx context.Context, purls []string, c *Client) map[string]*Package {
	return ipypi.BulkFetchPackages(ctx, purls, c)
}

// BulkFetchDescriptions fetches the latest description of every name in
// parallel with at most concurrency requests in flight.
func BulkFetchDescriptions(ctx context.Context, idx *Index, names []string, concurrency int) map[string]*PackageDescription {
	return ipypi.BulkFetchDescriptions(ctx, idx, names, concurrency)
}
