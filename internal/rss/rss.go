// Package rss parses items of the index's newest-packages and
// package-updates feeds into feed entries.
package rss

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed/rss"

	"github.com/git-pkgs/pypi/internal/core"
)

// Keys of a raw feed item.
const (
	KeyTitle       = "title"
	KeyLink        = "link"
	KeyPubDate     = "pubDate"
	KeyGUID        = "guid"
	KeyDescription = "description"
	KeyAuthor      = "author"
)

// newPackageSuffix marks items of the newest-packages feed.
const newPackageSuffix = " added to PyPI"

// ParseEntry converts one raw feed item into a FeedEntry.
//
// "name added to PyPI" titles yield no version; "name version" titles yield
// both. Any other title shape is rejected rather than guessed at.
func ParseEntry(raw map[string]string) (core.FeedEntry, error) {
	title, ok := raw[KeyTitle]
	if !ok {
		return core.FeedEntry{}, &core.MalformedFeedEntryError{Field: KeyTitle, Reason: "missing"}
	}
	link, ok := raw[KeyLink]
	if !ok {
		return core.FeedEntry{}, &core.MalformedFeedEntryError{Field: KeyLink, Reason: "missing"}
	}
	pubDate, ok := raw[KeyPubDate]
	if !ok {
		return core.FeedEntry{}, &core.MalformedFeedEntryError{Field: KeyPubDate, Reason: "missing"}
	}

	name, version, err := splitTitle(title)
	if err != nil {
		return core.FeedEntry{}, err
	}

	published, err := core.ParseRFC2822(pubDate)
	if err != nil {
		return core.FeedEntry{}, &core.MalformedFeedEntryError{Field: KeyPubDate, Value: pubDate, Reason: "not an RFC 2822 date"}
	}

	return core.FeedEntry{
		Title:           name,
		Version:         version,
		Link:            link,
		GUID:            optional(raw, KeyGUID),
		Description:     optional(raw, KeyDescription),
		Author:          optional(raw, KeyAuthor),
		PublicationDate: published,
	}, nil
}

func splitTitle(title string) (string, *string, error) {
	tokens := strings.Fields(strings.TrimSuffix(title, newPackageSuffix))
	switch len(tokens) {
	case 1:
		return tokens[0], nil, nil
	case 2:
		return tokens[0], &tokens[1], nil
	default:
		return "", nil, &core.MalformedFeedEntryError{
			Field:  KeyTitle,
			Value:  title,
			Reason: fmt.Sprintf("expected name or name and version, got %d tokens", len(tokens)),
		}
	}
}

func optional(raw map[string]string, key string) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	return &v
}

// ParseFeed parses a whole RSS document and converts every item.
// It stops at the first malformed item.
func ParseFeed(content string) ([]core.FeedEntry, error) {
	if content == "" {
		return nil, fmt.Errorf("feed content is empty")
	}

	fp := rss.Parser{}
	feed, err := fp.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]core.FeedEntry, 0, len(feed.Items))
	for i, item := range feed.Items {
		entry, err := ParseEntry(RawItem(item))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RawItem flattens a parsed <item> into the raw mapping ParseEntry takes.
// Elements that are absent or empty are left out.
func RawItem(item *rss.Item) map[string]string {
	raw := make(map[string]string, 6)
	set := func(key, value string) {
		if value != "" {
			raw[key] = value
		}
	}

	set(KeyTitle, item.Title)
	set(KeyLink, item.Link)
	set(KeyPubDate, item.PubDate)
	set(KeyDescription, item.Description)
	set(KeyAuthor, item.Author)
	if item.GUID != nil {
		set(KeyGUID, item.GUID.Value)
	}
	return raw
}
