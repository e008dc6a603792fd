package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/git-pkgs/pypi/internal/core"
)

var ErrNoDownloadURL = errors.New("no download URL available")

// DefaultFilesURL hosts the distribution files of pypi.org.
const DefaultFilesURL = "https://files.pythonhosted.org"

// DescriptionSource provides the package description a release file is
// picked from. *pypi.Index satisfies it.
type DescriptionSource interface {
	FetchDescription(ctx context.Context, name, version string) (*core.PackageDescription, error)
}

// Resolver determines download URLs for release files.
type Resolver struct {
	source   DescriptionSource
	filesURL string
}

// NewResolver creates a resolver. With a nil source only the conventional
// source distribution URL can be resolved.
func NewResolver(source DescriptionSource) *Resolver {
	return &Resolver{source: source, filesURL: DefaultFilesURL}
}

// ArtifactInfo contains information about a downloadable release file.
type ArtifactInfo struct {
	URL       string
	Filename  string
	Integrity string // sha256-...
	Digests   core.FileDigests
}

// Resolve returns the release file of name at version with the given
// packagetype ("sdist", "bdist_wheel", ...). An empty packageType picks the
// first file the index lists.
func (r *Resolver) Resolve(ctx context.Context, name, version, packageType string) (*ArtifactInfo, error) {
	if r.source == nil {
		if packageType != "" && packageType != "sdist" {
			return nil, fmt.Errorf("%w: %s requires a description source", ErrNoDownloadURL, packageType)
		}
		return r.resolveWithoutSource(name, version)
	}
	return r.resolveFromMetadata(ctx, name, version, packageType)
}

// resolveWithoutSource builds the redirecting source distribution URL the
// files host serves for every project.
func (r *Resolver) resolveWithoutSource(name, version string) (*ArtifactInfo, error) {
	if name == "" || version == "" {
		return nil, fmt.Errorf("%w: name and version are required", ErrNoDownloadURL)
	}
	filename := fmt.Sprintf("%s-%s.tar.gz", name, version)
	url := fmt.Sprintf("%s/packages/source/%s/%s/%s", r.filesURL, name[:1], name, filename)
	return &ArtifactInfo{
		URL:      url,
		Filename: filename,
	}, nil
}

// resolveFromMetadata fetches the version's description to find the file.
func (r *Resolver) resolveFromMetadata(ctx context.Context, name, version, packageType string) (*ArtifactInfo, error) {
	desc, err := r.source.FetchDescription(ctx, name, version)
	if err != nil {
		return nil, fmt.Errorf("fetching description: %w", err)
	}

	file, ok := desc.FileByType(packageType)
	if !ok {
		if packageType == "" {
			return nil, fmt.Errorf("%w: %s %s has no files", ErrNoDownloadURL, name, version)
		}
		return nil, fmt.Errorf("%w: no %s for %s %s", ErrNoDownloadURL, packageType, name, version)
	}

	if file.URL == "" {
		return nil, ErrNoDownloadURL
	}
	filename := file.Filename
	if filename == "" {
		filename = filenameFromURL(file.URL)
	}
	return &ArtifactInfo{
		URL:       file.URL,
		Filename:  filename,
		Integrity: file.Digests.Integrity(),
		Digests:   file.Digests,
	}, nil
}

func filenameFromURL(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
