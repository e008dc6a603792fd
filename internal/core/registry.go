package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	indexes = map[string]string{
		"pypi":     "https://pypi.org",
		"testpypi": "https://test.pypi.org",
	}
	mu sync.RWMutex
)

// Register adds or replaces a named package index.
// baseURL is the index root, e.g. "https://pypi.org".
func Register(name string, baseURL string) {
	mu.Lock()
	defer mu.Unlock()
	indexes[name] = strings.TrimSuffix(baseURL, "/")
}

// IndexURL returns the base URL registered under name.
func IndexURL(name string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	url, ok := indexes[name]
	if !ok {
		return "", fmt.Errorf("unknown index: %s", name)
	}
	return url, nil
}

// SupportedIndexes returns the registered index names in sorted order.
func SupportedIndexes() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(indexes))
	for name := range indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
