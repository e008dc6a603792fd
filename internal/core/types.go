// Package core provides the shared record types, errors and index registry.
package core

import "time"

// FeedEntry is one item of the newest-packages or package-updates feed.
type FeedEntry struct {
	Title           string    `json:"title"`
	Version         *string   `json:"version"` // nil for newest-packages items
	Link            string    `json:"link"`
	GUID            *string   `json:"guid"`
	Description     *string   `json:"description"`
	Author          *string   `json:"author"`
	PublicationDate time.Time `json:"pub_date"`
}

// Description is the "info" block of a package description document.
//
// Dynamic and ProvidesExtra are nil when the document predates them.
type Description struct {
	Author                 string            `json:"author"`
	AuthorEmail            string            `json:"author_email"`
	BugtrackURL            *string           `json:"bugtrack_url"`
	Classifiers            []string          `json:"classifiers"`
	Description            string            `json:"description"`
	DescriptionContentType string            `json:"description_content_type"`
	DocsURL                *string           `json:"docs_url"`
	DownloadURL            string            `json:"download_url"`
	Downloads              DownloadCounts    `json:"downloads"`
	HomePage               string            `json:"home_page"`
	Keywords               string            `json:"keywords"`
	License                string            `json:"license"`
	LicenseExpression      *string           `json:"license_expression,omitempty"`
	Maintainer             string            `json:"maintainer"`
	MaintainerEmail        string            `json:"maintainer_email"`
	Name                   string            `json:"name"`
	PackageURL             string            `json:"package_url"`
	Platform               *string           `json:"platform"`
	ProjectURL             string            `json:"project_url"`
	ProjectURLs            map[string]string `json:"project_urls"`
	ReleaseURL             string            `json:"release_url"`
	RequiresDist           []string          `json:"requires_dist"`
	RequiresPython         *string           `json:"requires_python"`
	Summary                string            `json:"summary"`
	Version                string            `json:"version"`
	Yanked                 bool              `json:"yanked"`
	YankedReason           *string           `json:"yanked_reason"`
	Dynamic                []string          `json:"dynamic"`
	ProvidesExtra          []string          `json:"provides_extra"`
}

// DownloadCounts holds the index's download counters. A value of -1 means
// the counter is not tracked.
type DownloadCounts struct {
	LastDay   int `json:"last_day"`
	LastMonth int `json:"last_month"`
	LastWeek  int `json:"last_week"`
}

// NotTracked is the download counter value used when the index no longer
// tracks downloads.
const NotTracked = -1

// FileDigests holds the hex digests published for a release file.
type FileDigests struct {
	Blake2b256 string `json:"blake2b_256"`
	MD5        string `json:"md5"`
	SHA256     string `json:"sha256"`
}

// ReleaseFile is one published file of a release (an entry of "urls").
//
// UploadTime and UploadTimePrecise describe the same instant. UploadTime is
// wall-clock time without a zone, truncated to seconds, and carries the UTC
// location only because time.Time has no zone-less form. UploadTimePrecise
// is zone-aware with microsecond precision.
type ReleaseFile struct {
	CommentText       *string     `json:"comment_text"`
	Digests           FileDigests `json:"digests"`
	Downloads         int         `json:"downloads"`
	Filename          string      `json:"filename"`
	HasSig            bool        `json:"has_sig"`
	MD5Digest         string      `json:"md5_digest"`
	PackageType       string      `json:"packagetype"`
	PythonVersion     string      `json:"python_version"`
	RequiresPython    *string     `json:"requires_python"`
	Size              int64       `json:"size"`
	UploadTime        time.Time   `json:"upload_time"`
	UploadTimePrecise time.Time   `json:"upload_time_iso_8601"`
	URL               string      `json:"url"`
	Yanked            bool        `json:"yanked"`
	YankedReason      *string     `json:"yanked_reason"`
}

// VulnerabilityReport is a known vulnerability affecting the described version.
type VulnerabilityReport struct {
	ID        string     `json:"id"`
	Aliases   []string   `json:"aliases"`
	Link      string     `json:"link"`
	Source    string     `json:"source"`
	Withdrawn *time.Time `json:"withdrawn"`
	Summary   string     `json:"summary"`
	Details   string     `json:"details"`
	FixedIn   []string   `json:"fixed_in"`
}

// PackageDescription is the full JSON document served for a package,
// optionally pinned to a version.
type PackageDescription struct {
	Info            Description           `json:"info"`
	LastSerial      int64                 `json:"last_serial"`
	Files           []ReleaseFile         `json:"urls"`
	Vulnerabilities []VulnerabilityReport `json:"vulnerabilities"`
}

// Package is the simplified view of a package.
type Package struct {
	Title    string    `json:"title"`
	Releases []Release `json:"releases"`
}

// Release is the set of distributions published for one version.
type Release struct {
	Version       string         `json:"version"`
	Distributions []Distribution `json:"distributions"`
}

// Distribution is one published file of a release.
type Distribution struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Dependency represents a requirement declared in requires_dist.
type Dependency struct {
	Name         string
	Requirements string
	Scope        Scope
	Optional     bool
}

// Scope indicates when a dependency is required. Requirements guarded by an
// environment marker carry the marker text as their scope.
type Scope string

const (
	Runtime     Scope = "runtime"
	Development Scope = "development"
	Test        Scope = "test"
	Build       Scope = "build"
	Optional    Scope = "optional"
)
