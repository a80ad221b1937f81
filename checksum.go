package triagekit

import (
	"crypto/md5"  //nolint:gosec // MD5 kept as a legacy evidence identifier, not security
	"crypto/sha1" //nolint:gosec // SHA1 kept as a legacy evidence identifier, not security
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Hash algorithm names as they appear in the report hash set.
const (
	HashMD5    = "md5"
	HashSHA1   = "sha1"
	HashSHA256 = "sha256"
)

// HashSet maps algorithm name to hex digest. Every digest in a set is
// computed from the identical byte stream in one pass, so they always
// describe the same content snapshot even if the file is modified
// underneath a concurrent analysis.
type HashSet map[string]string

// NewHasher creates a new hash.Hash for the given algorithm name.
// Unknown algorithms return nil.
func NewHasher(algorithm string) hash.Hash {
	switch algorithm {
	case HashMD5:
		return md5.New() //nolint:gosec // legacy identifier, not security
	case HashSHA1:
		return sha1.New() //nolint:gosec // legacy identifier, not security
	case HashSHA256:
		return sha256.New()
	default:
		return nil
	}
}

// ComputeHashes streams the file once in fixed-size chunks, updating all
// algorithms per chunk. It returns the legacy hash set together with an
// xxhash64 content key computed in the same pass; the key names the
// on-disk report file and is not part of the published set.
func ComputeHashes(handle *FileHandle, chunkSize int) (HashSet, uint64, error) {
	if chunkSize <= 0 {
		chunkSize = 8192
	}

	md5h := NewHasher(HashMD5)
	sha1h := NewHasher(HashSHA1)
	sha256h := NewHasher(HashSHA256)
	key := xxhash.New()

	// Single-pass discipline: one read feeds every hasher, so the
	// digests can never describe different snapshots of the content.
	w := io.MultiWriter(md5h, sha1h, sha256h, key)
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(w, handle.Reader(), buf); err != nil {
		return nil, 0, NewAnalysisError(ErrorKindInput, "hash", handle.Path(), "", err)
	}

	hashes := HashSet{
		HashMD5:    hex.EncodeToString(md5h.Sum(nil)),
		HashSHA1:   hex.EncodeToString(sha1h.Sum(nil)),
		HashSHA256: hex.EncodeToString(sha256h.Sum(nil)),
	}
	return hashes, key.Sum64(), nil
}
