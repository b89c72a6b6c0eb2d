package execmodel

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	hex "github.com/tmthrgd/go-hex"
)

// hexString renders raw bytes the way ids and digests are logged and used
// as SQL primary keys: lowercase hex, no separators. tmthrgd/go-hex mirrors
// encoding/hex's API with a SIMD-accelerated implementation.
func hexString(b []byte) string {
	return hex.EncodeToString(b)
}

// NewDigest hashes content with a 256-bit digest built from two independent
// xxhash passes. This is a synthetic content-addressing scheme: it exists
// so tests and the reference store can mint stable
// digests for arbitrary byte content without pulling in the validator's
// real (and out-of-scope) hashing stack.
func NewDigest(content []byte) Digest {
	var d Digest
	h1 := xxhash.Sum64(content)
	h2 := xxhash.Sum64(append(append([]byte(nil), content...), 0xff))
	binary.BigEndian.PutUint64(d[0:8], h1)
	binary.BigEndian.PutUint64(d[8:16], h2)
	binary.BigEndian.PutUint64(d[16:24], h1^h2)
	binary.BigEndian.PutUint64(d[24:32], ^h1)
	return d
}

// NewObjectID derives an ObjectID from an arbitrary seed, using the same
// digest construction as NewDigest. It is a convenience for tests, not
// part of the cache's specified surface.
func NewObjectID(seed string) ObjectID {
	return ObjectID(NewDigest([]byte(seed)))
}

// NewTransactionDigest derives a TransactionDigest from an arbitrary seed.
func NewTransactionDigest(seed string) TransactionDigest {
	return TransactionDigest(NewDigest([]byte("tx:" + seed)))
}

// DigestFromHex decodes a hex-encoded digest, as produced by Digest.String.
func DigestFromHex(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, err
	}
	if len(b) != len(d) {
		return d, errInvalidDigestLength(len(b))
	}
	copy(d[:], b)
	return d, nil
}

// ObjectIDFromHex decodes a hex-encoded object id, as produced by
// ObjectID.String.
func ObjectIDFromHex(s string) (ObjectID, error) {
	d, err := DigestFromHex(s)
	return ObjectID(d), err
}

// TransactionDigestFromHex decodes a hex-encoded transaction digest, as
// produced by TransactionDigest.String.
func TransactionDigestFromHex(s string) (TransactionDigest, error) {
	d, err := DigestFromHex(s)
	return TransactionDigest(d), err
}

type errInvalidDigestLength int

func (e errInvalidDigestLength) Error() string {
	return "execmodel: invalid digest length"
}
