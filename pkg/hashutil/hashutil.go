package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// ShortHashLength is the number of hex characters kept by ShortHash.
const ShortHashLength = 12

// ParseHashAlgo maps a user-supplied algorithm name onto a HashAlgo.
// Matching is case-insensitive; an empty name selects BLAKE3.
func ParseHashAlgo(name string) (HashAlgo, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(HashAlgoBLAKE3):
		return HashAlgoBLAKE3, nil
	case string(HashAlgoSHA256):
		return HashAlgoSHA256, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// HashBytes returns the hash of bytes as a hex string using the specified algorithm.
// Supported algorithms: "sha256" and "blake3".
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		return hashBytesSha256(data), nil
	case HashAlgoBLAKE3:
		return hashBytesBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ShortHash returns the first ShortHashLength hex characters of HashBytes.
func ShortHash(data []byte, algo HashAlgo) (string, error) {
	full, err := HashBytes(data, algo)
	if err != nil {
		return "", err
	}
	return full[:ShortHashLength], nil
}

func hashBytesSha256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashBytesBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
