package cli

import (
	"archive/tar"
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/crypto/blake2b"

	"github.com/git-pkgs/pypi/internal/core"
)

func buildSdist(t *testing.T) []byte {
	t.Helper()
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	files := map[string]string{
		"letsbuilda-pypi-4.0.0/PKG-INFO":       "Name: letsbuilda-pypi\n",
		"letsbuilda-pypi-4.0.0/pyproject.toml": "[project]\n",
	}
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}); err != nil {
			t.Fatal(err)
		}
		_, _ = tw.Write([]byte(content))
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, _ = gw.Write(tarBuf.Bytes())
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return gzBuf.Bytes()
}

// newServer serves the fixture description with its sdist rewritten to point
// at a real archive hosted by the same server. The wheel points at the same
// server but is not hosted.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile("testdata/letsbuilda-pypi.json")
	if err != nil {
		t.Fatal(err)
	}
	packages, _ := os.ReadFile("testdata/packages.xml")
	updates, _ := os.ReadFile("testdata/updates.xml")
	sdist := buildSdist(t)

	var description []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pypi/letsbuilda-pypi/json", "/pypi/letsbuilda-pypi/4.0.0/json":
			_, _ = w.Write(description)
		case "/rss/packages.xml":
			_, _ = w.Write(packages)
		case "/rss/updates.xml":
			_, _ = w.Write(updates)
		case "/files/letsbuilda-pypi-4.0.0.tar.gz":
			_, _ = w.Write(sdist)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	var doc map[string]any
	if err := json.Unmarshal(fixture, &doc); err != nil {
		t.Fatal(err)
	}
	sha := sha256.Sum256(sdist)
	sum := md5.Sum(sdist)
	b2 := blake2b.Sum256(sdist)
	wheel := doc["urls"].([]any)[0].(map[string]any)
	wheel["url"] = server.URL + "/files/letsbuilda_pypi-4.0.0-py3-none-any.whl"

	file := doc["urls"].([]any)[1].(map[string]any)
	file["url"] = server.URL + "/files/letsbuilda-pypi-4.0.0.tar.gz"
	file["digests"] = map[string]any{
		"blake2b_256": hex.EncodeToString(b2[:]),
		"md5":         hex.EncodeToString(sum[:]),
		"sha256":      hex.EncodeToString(sha[:]),
	}
	if description, err = json.Marshal(doc); err != nil {
		t.Fatal(err)
	}
	return server
}

func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PYPI_BASE_URL", server.URL)
	t.Setenv("PYPI_INDEX", "")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFeedCmd(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	tests := []struct {
		args      []string
		wantLines int
		contains  string
	}{
		{[]string{"feed"}, 3, "requests"},
		{[]string{"feed", "new"}, 2, "(new)"},
		{[]string{"feed", "updates"}, 3, "2.31.0"},
		{[]string{"feed", "all"}, 5, "another-package"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, server, tt.args...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			lines := strings.Split(strings.TrimSpace(out), "\n")
			if len(lines) != tt.wantLines {
				t.Errorf("expected %d lines, got %d:\n%s", tt.wantLines, len(lines), out)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output does not contain %q:\n%s", tt.contains, out)
			}
		})
	}
}

func TestFeedCmd_InvalidArg(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	if _, err := run(t, server, "feed", "everything"); err == nil {
		t.Error("expected error for unknown feed")
	}
}

func TestFeedCmd_JSON(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	out, err := run(t, server, "feed", "updates", "--json")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	var entries []core.FeedEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not a JSON feed: %v", err)
	}
	if len(entries) != 3 || entries[0].Title != "letsbuilda-pypi" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestShowCmd(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	out, err := run(t, server, "show", "letsbuilda-pypi")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, want := range []string{
		"letsbuilda-pypi 4.0.0",
		"purl:        pkg:pypi/letsbuilda-pypi@4.0.0",
		"license:     MIT",
		"repository:  https://github.com/letsbuilda/letsbuilda-pypi",
		"python:      >=3.11",
		"extras:      async, dev, tests",
		"aiohttp * (extra == 'async')",
		"PYSEC-2023-0001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCmd_NotFound(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	_, err := run(t, server, "show", "letsbuilda-pypi", "99.0.0")
	var notFound *core.PackageNotFoundError
	if !errors.As(err, &notFound) || notFound.Version != "99.0.0" {
		t.Errorf("expected PackageNotFoundError for 99.0.0, got %v", err)
	}
}

func TestFilesCmd(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	out, err := run(t, server, "files", "letsbuilda-pypi", "4.0.0")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 files, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "letsbuilda_pypi-4.0.0-py3-none-any.whl") || !strings.Contains(lines[0], "bdist_wheel") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "sdist") {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestInspectCmd(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	out, err := run(t, server, "inspect", "letsbuilda-pypi", "4.0.0", "--type", "sdist")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "letsbuilda-pypi-4.0.0/PKG-INFO") || !strings.Contains(out, "letsbuilda-pypi-4.0.0/pyproject.toml") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestInspectCmd_MissingFile(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	_, err := run(t, server, "inspect", "letsbuilda-pypi", "4.0.0", "--type", "bdist_wheel")
	if err == nil {
		t.Fatal("expected wheel download to fail")
	}
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected not found for the unhosted wheel, got %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "version: dev") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestIndexFlag(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	_, err := run(t, server, "show", "letsbuilda-pypi", "--index", "no-such-index")
	if err == nil || !strings.Contains(err.Error(), "unknown index") {
		t.Errorf("expected unknown index error, got %v", err)
	}
}
