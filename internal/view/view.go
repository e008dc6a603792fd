// Package view derives the simplified package view from a package
// description.
package view

import "github.com/git-pkgs/pypi/internal/core"

// Project builds the Package view of d: one release for the described
// version holding every file, in document order.
func Project(d *core.PackageDescription) *core.Package {
	dists := make([]core.Distribution, 0, len(d.Files))
	for _, f := range d.Files {
		dists = append(dists, core.Distribution{
			Filename: f.Filename,
			URL:      f.URL,
		})
	}

	return &core.Package{
		Title: d.Info.Name,
		Releases: []core.Release{{
			Version:       d.Info.Version,
			Distributions: dists,
		}},
	}
}
