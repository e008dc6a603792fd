// Package jsonapi parses package description documents served by the
// index's JSON API ({base}/pypi/{name}[/{version}]/json).
package jsonapi

import (
	"encoding/json"

	"github.com/git-pkgs/pypi/internal/core"
)

// blake2bKey is the upstream digest key; it is the only key whose domain
// field name differs from the document.
const blake2bKey = "blake2b_256"

type field struct {
	key string
	dst any
}

func (o object) requireAll(fields ...field) error {
	for _, f := range fields {
		if err := o.required(f.key, f.dst); err != nil {
			return err
		}
	}
	return nil
}

// ParseDescription converts a package description document into a
// PackageDescription. Unknown keys are ignored; a missing required key, a
// value of the wrong type or an unparseable timestamp fails the whole parse.
func ParseDescription(data []byte) (*core.PackageDescription, error) {
	doc, err := decodeObject("", json.RawMessage(data))
	if err != nil {
		return nil, &core.SchemaViolationError{Path: "$", Reason: "document is not a JSON object"}
	}

	urls, err := doc.array("urls")
	if err != nil {
		return nil, err
	}
	files := make([]core.ReleaseFile, 0, len(urls))
	for i, raw := range urls {
		f, err := parseReleaseFile(indexPath("urls", i), raw)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	info, err := doc.child("info")
	if err != nil {
		return nil, err
	}
	desc, err := parseInfo(info)
	if err != nil {
		return nil, err
	}

	vulns, err := doc.array("vulnerabilities")
	if err != nil {
		return nil, err
	}
	reports := make([]core.VulnerabilityReport, 0, len(vulns))
	for i, raw := range vulns {
		v, err := parseVulnerability(indexPath("vulnerabilities", i), raw)
		if err != nil {
			return nil, err
		}
		reports = append(reports, v)
	}

	var serial int64
	if err := doc.required("last_serial", &serial); err != nil {
		return nil, err
	}

	return &core.PackageDescription{
		Info:            desc,
		LastSerial:      serial,
		Files:           files,
		Vulnerabilities: reports,
	}, nil
}

func parseDigests(o object) (core.FileDigests, error) {
	var d core.FileDigests
	err := o.requireAll(
		field{blake2bKey, &d.Blake2b256},
		field{"md5", &d.MD5},
		field{"sha256", &d.SHA256},
	)
	return d, err
}

func parseReleaseFile(path string, raw json.RawMessage) (core.ReleaseFile, error) {
	o, err := decodeObject(path, raw)
	if err != nil {
		return core.ReleaseFile{}, err
	}

	digests, err := o.child("digests")
	if err != nil {
		return core.ReleaseFile{}, err
	}

	var f core.ReleaseFile
	if f.Digests, err = parseDigests(digests); err != nil {
		return core.ReleaseFile{}, err
	}

	err = o.requireAll(
		field{"comment_text", &f.CommentText},
		field{"downloads", &f.Downloads},
		field{"filename", &f.Filename},
		field{"has_sig", &f.HasSig},
		field{"md5_digest", &f.MD5Digest},
		field{"packagetype", &f.PackageType},
		field{"python_version", &f.PythonVersion},
		field{"requires_python", &f.RequiresPython},
		field{"size", &f.Size},
		field{"url", &f.URL},
		field{"yanked", &f.Yanked},
		field{"yanked_reason", &f.YankedReason},
	)
	if err != nil {
		return core.ReleaseFile{}, err
	}

	if f.UploadTime, err = o.timestamp("upload_time", core.ParseNaiveISO8601); err != nil {
		return core.ReleaseFile{}, err
	}
	if f.UploadTimePrecise, err = o.timestamp("upload_time_iso_8601", core.ParseAwareISO8601); err != nil {
		return core.ReleaseFile{}, err
	}
	return f, nil
}

func parseInfo(o object) (core.Description, error) {
	var d core.Description

	downloads, err := o.child("downloads")
	if err != nil {
		return core.Description{}, err
	}
	err = downloads.requireAll(
		field{"last_day", &d.Downloads.LastDay},
		field{"last_month", &d.Downloads.LastMonth},
		field{"last_week", &d.Downloads.LastWeek},
	)
	if err != nil {
		return core.Description{}, err
	}

	err = o.requireAll(
		field{"author", &d.Author},
		field{"author_email", &d.AuthorEmail},
		field{"bugtrack_url", &d.BugtrackURL},
		field{"classifiers", &d.Classifiers},
		field{"description", &d.Description},
		field{"description_content_type", &d.DescriptionContentType},
		field{"docs_url", &d.DocsURL},
		field{"download_url", &d.DownloadURL},
		field{"home_page", &d.HomePage},
		field{"keywords", &d.Keywords},
		field{"license", &d.License},
		field{"maintainer", &d.Maintainer},
		field{"maintainer_email", &d.MaintainerEmail},
		field{"name", &d.Name},
		field{"package_url", &d.PackageURL},
		field{"platform", &d.Platform},
		field{"project_url", &d.ProjectURL},
		field{"project_urls", &d.ProjectURLs},
		field{"release_url", &d.ReleaseURL},
		field{"requires_dist", &d.RequiresDist},
		field{"requires_python", &d.RequiresPython},
		field{"summary", &d.Summary},
		field{"version", &d.Version},
		field{"yanked", &d.Yanked},
		field{"yanked_reason", &d.YankedReason},
	)
	if err != nil {
		return core.Description{}, err
	}

	if err := parseLateFields(o, &d); err != nil {
		return core.Description{}, err
	}
	return d, nil
}

// parseLateFields reads the info keys that older documents predate. A
// missing key, like JSON null, leaves the field absent (nil).
func parseLateFields(o object, d *core.Description) error {
	for _, f := range []field{
		{"dynamic", &d.Dynamic},
		{"provides_extra", &d.ProvidesExtra},
		{"license_expression", &d.LicenseExpression},
	} {
		if err := o.optional(f.key, f.dst); err != nil {
			return err
		}
	}
	return nil
}

func parseVulnerability(path string, raw json.RawMessage) (core.VulnerabilityReport, error) {
	o, err := decodeObject(path, raw)
	if err != nil {
		return core.VulnerabilityReport{}, err
	}

	var v core.VulnerabilityReport
	err = o.requireAll(
		field{"id", &v.ID},
		field{"aliases", &v.Aliases},
		field{"link", &v.Link},
		field{"source", &v.Source},
		field{"summary", &v.Summary},
		field{"details", &v.Details},
		field{"fixed_in", &v.FixedIn},
	)
	if err != nil {
		return core.VulnerabilityReport{}, err
	}

	if v.Withdrawn, err = o.nullableTimestamp("withdrawn", core.ParseAwareISO8601); err != nil {
		return core.VulnerabilityReport{}, err
	}
	return v, nil
}
