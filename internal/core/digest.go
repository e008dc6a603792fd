package core

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Integrity returns the sha256 digest in "sha256-<hex>" form, or "" when
// no sha256 digest was published.
func (d FileDigests) Integrity() string {
	if d.SHA256 == "" {
		return ""
	}
	return "sha256-" + d.SHA256
}

// Verify checks data against every published digest. Digests that were not
// published are skipped.
func (d FileDigests) Verify(data []byte) error {
	sha := sha256.Sum256(data)
	if err := compareDigest("sha256", d.SHA256, sha[:]); err != nil {
		return err
	}
	b2 := blake2b.Sum256(data)
	if err := compareDigest("blake2b_256", d.Blake2b256, b2[:]); err != nil {
		return err
	}
	sum := md5.Sum(data)
	return compareDigest("md5", d.MD5, sum[:])
}

func compareDigest(algorithm, want string, got []byte) error {
	if want == "" {
		return nil
	}
	gotHex := hex.EncodeToString(got)
	if !strings.EqualFold(want, gotHex) {
		return &DigestMismatchError{Algorithm: algorithm, Want: want, Got: gotHex}
	}
	return nil
}
