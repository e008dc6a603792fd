// Package archive reads the members of distribution archives: wheels (zip)
// and source distributions (tar, optionally gzip, bzip2, xz or zstd
// compressed).
package archive

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrUnknownFormat is returned when data is not a recognised archive.
var ErrUnknownFormat = errors.New("unknown archive format")

// Format identifies an archive container or compression.
type Format string

const (
	FormatZip     Format = "zip"
	FormatTar     Format = "tar"
	FormatGzip    Format = "gzip"
	FormatBzip2   Format = "bzip2"
	FormatXz      Format = "xz"
	FormatZstd    Format = "zstd"
	FormatUnknown Format = ""
)

var magics = []struct {
	format Format
	prefix []byte
}{
	{FormatZip, []byte("PK\x03\x04")},
	{FormatZip, []byte("PK\x05\x06")}, // empty archive
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{FormatZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
}

// Detect sniffs the format of data from its leading bytes.
func Detect(data []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	// ustar magic lives at offset 257
	if len(data) > 262 && string(data[257:262]) == "ustar" {
		return FormatTar
	}
	return FormatUnknown
}

// ReadMembers returns the regular files of an archive keyed by member name.
// Contents are decoded as UTF-8 with invalid bytes dropped.
func ReadMembers(data []byte) (map[string]string, error) {
	switch format := Detect(data); format {
	case FormatZip:
		return readZip(data)
	case FormatTar:
		return readTar(bytes.NewReader(data))
	case FormatGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gr.Close()
		return readTar(gr)
	case FormatBzip2:
		return readTar(bzip2.NewReader(bytes.NewReader(data)))
	case FormatXz:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening xz stream: %w", err)
		}
		return readTar(xr)
	case FormatZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		return readTar(zr)
	default:
		return nil, ErrUnknownFormat
	}
}

func readTar(r io.Reader) (map[string]string, error) {
	files := make(map[string]string)
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", header.Name, err)
		}
		files[header.Name] = decode(content)
	}
	return files, nil
}

func readZip(data []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading zip: %w", err)
	}

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		files[f.Name] = decode(content)
	}
	return files, nil
}

func decode(content []byte) string {
	return strings.ToValidUTF8(string(content), "")
}
