package pypi

import (
	"fmt"

	"github.com/git-pkgs/pypi/internal/core"
)

// URLs builds the URLs an index serves for a project.
type URLs struct {
	baseURL string
}

// Registry returns the project page, pinned to version when one is given.
func (u *URLs) Registry(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/project/%s/%s/", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/project/%s/", u.baseURL, name)
}

// Download returns "": file URLs are content-addressed and only known from
// the package description.
func (u *URLs) Download(name, version string) string {
	return ""
}

// Documentation returns the project's Read the Docs URL.
func (u *URLs) Documentation(name, version string) string {
	if version != "" {
		return fmt.Sprintf("https://%s.readthedocs.io/en/%s/", name, version)
	}
	return fmt.Sprintf("https://%s.readthedocs.io/", name)
}

// PURL returns the pkg:pypi package URL.
func (u *URLs) PURL(name, version string) string {
	return core.NewPURL(name, version)
}

// JSON returns the package description URL, {base}/pypi/{name}[/{version}]/json.
func (u *URLs) JSON(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/pypi/%s/%s/json", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/pypi/%s/json", u.baseURL, name)
}
