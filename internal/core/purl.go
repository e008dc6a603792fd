package core

import (
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with index-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// ParsePURL parses a pypi Package URL such as "pkg:pypi/requests@2.31.0".
// PURLs of any other type are rejected.
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	if p.Type != packageurl.TypePyPi {
		return nil, fmt.Errorf("unsupported PURL type %q: %s", p.Type, purl)
	}
	return &PURL{p}, nil
}

// IndexURL returns the repository_url qualifier, which selects a private
// index, or "" for the default index.
func (p PURL) IndexURL() string {
	return p.Qualifiers.Map()["repository_url"]
}

// NewPURL builds the Package URL of a project, pinned to version when it is
// not empty.
func NewPURL(name, version string) string {
	return packageurl.NewPackageURL(packageurl.TypePyPi, "", NormalizeName(name), version, nil, "").ToString()
}

// PURL returns the Package URL of the release.
func (r Release) PURL(title string) string {
	return NewPURL(title, r.Version)
}
