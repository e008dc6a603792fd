package core

import (
	"regexp"
	"strings"
)

// NormalizedName returns the PEP 503 form of the package name.
func (d Description) NormalizedName() string {
	return NormalizeName(d.Name)
}

// NormalizeName lowercases a project name and folds "_" and "." to "-".
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// Repository returns the source repository URL, preferring the well-known
// project URL labels and falling back to any forge URL.
func (d Description) Repository() string {
	priorityKeys := []string{"Repository", "Source", "Source Code", "Code"}
	for _, key := range priorityKeys {
		if url, ok := d.ProjectURLs[key]; ok && url != "" {
			if isRepoURL(url) {
				return url
			}
		}
	}

	for _, url := range d.ProjectURLs {
		if isRepoURL(url) && !strings.Contains(url, "github.com/sponsors") {
			return url
		}
	}

	if isRepoURL(d.HomePage) {
		return d.HomePage
	}

	return ""
}

// Homepage returns home_page, or the "Homepage"/"Home" project URL.
func (d Description) Homepage() string {
	if d.HomePage != "" {
		return d.HomePage
	}
	if url, ok := d.ProjectURLs["Homepage"]; ok {
		return url
	}
	if url, ok := d.ProjectURLs["Home"]; ok {
		return url
	}
	return ""
}

func isRepoURL(url string) bool {
	return strings.Contains(url, "github.com") ||
		strings.Contains(url, "gitlab.com") ||
		strings.Contains(url, "bitbucket.org") ||
		strings.Contains(url, "codeberg.org")
}

// LicenseName returns the license expression, the license field, or the last
// segment of a "License ::" classifier, in that order.
func (d Description) LicenseName() string {
	if d.LicenseExpression != nil && *d.LicenseExpression != "" {
		return *d.LicenseExpression
	}
	if d.License != "" {
		return d.License
	}

	for _, classifier := range d.Classifiers {
		if strings.HasPrefix(classifier, "License :: ") {
			parts := strings.Split(classifier, " :: ")
			return parts[len(parts)-1]
		}
	}

	return ""
}

// KeywordList splits the keywords field, which is comma or space separated
// depending on the build backend.
func (d Description) KeywordList() []string {
	if d.Keywords == "" {
		return nil
	}
	if strings.Contains(d.Keywords, ",") {
		parts := strings.Split(d.Keywords, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return strings.Fields(d.Keywords)
}

var pep508NameRegex = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*[A-Za-z0-9]|[A-Za-z0-9])(\s*\[.*?\])?`)

// Dependencies parses requires_dist into dependencies. Requirements behind
// an environment marker are optional and scoped by the marker text.
func (d Description) Dependencies() []Dependency {
	if len(d.RequiresDist) == 0 {
		return nil
	}

	deps := make([]Dependency, 0, len(d.RequiresDist))
	for _, req := range d.RequiresDist {
		name, requirements, envMarker := ParsePEP508(req)

		scope := Runtime
		optional := false
		if envMarker != "" {
			scope = Scope(envMarker)
			optional = true
		}

		deps = append(deps, Dependency{
			Name:         name,
			Requirements: requirements,
			Scope:        scope,
			Optional:     optional,
		})
	}
	return deps
}

// ParsePEP508 splits a PEP 508 requirement into name, version specifier
// ("*" when unconstrained) and environment marker.
func ParsePEP508(dep string) (name, requirements, envMarker string) {
	// Split on ; first to get environment markers
	parts := strings.SplitN(dep, ";", 2)
	nameAndVersion := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		envMarker = strings.TrimSpace(parts[1])
	}

	match := pep508NameRegex.FindStringSubmatch(nameAndVersion)
	if match != nil {
		name = strings.TrimSpace(match[1])
		requirements = strings.TrimSpace(nameAndVersion[len(match[0]):])
		// Remove parentheses from version spec
		requirements = strings.Trim(requirements, "()")
		requirements = strings.TrimSpace(requirements)
	} else {
		name = nameAndVersion
	}

	if idx := strings.Index(name, "["); idx != -1 {
		name = name[:idx]
	}

	if requirements == "" {
		requirements = "*"
	}

	return
}

// FileByType returns the first file of the given package type ("sdist",
// "bdist_wheel"), or the first file when packageType is empty.
func (p *PackageDescription) FileByType(packageType string) (ReleaseFile, bool) {
	for _, f := range p.Files {
		if packageType == "" || f.PackageType == packageType {
			return f, true
		}
	}
	return ReleaseFile{}, false
}

// ActiveVulnerabilities returns the reports that have not been withdrawn.
func (p *PackageDescription) ActiveVulnerabilities() []VulnerabilityReport {
	var active []VulnerabilityReport
	for _, v := range p.Vulnerabilities {
		if v.Withdrawn == nil {
			active = append(active, v)
		}
	}
	return active
}
