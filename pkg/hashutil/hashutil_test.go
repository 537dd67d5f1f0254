package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		algo     hashutil.HashAlgo
		input    string
		expected string
	}{
		{
			name:     "sha256 empty",
			algo:     hashutil.HashAlgoSHA256,
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "sha256 abc",
			algo:     hashutil.HashAlgoSHA256,
			input:    "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "blake3 empty",
			algo:     hashutil.HashAlgoBLAKE3,
			input:    "",
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:     "blake3 abc",
			algo:     hashutil.HashAlgoBLAKE3,
			input:    "abc",
			expected: "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := hashutil.HashBytes([]byte(tt.input), tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHashBytes_MatchesBlake3Library(t *testing.T) {
	data := []byte(`<h1>Header</h1><div class="foo">Foo</div>`)

	result, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	expected := blake3.Sum256(data)
	assert.Equal(t, hex.EncodeToString(expected[:]), result)
}

func TestHashBytes_UnsupportedAlgorithm(t *testing.T) {
	result, err := hashutil.HashBytes([]byte("test data"), "md5")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash algorithm")
	assert.Empty(t, result)
}

func TestShortHash(t *testing.T) {
	data := []byte("docs/index.jsx")

	full, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	short, err := hashutil.ShortHash(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Len(t, short, hashutil.ShortHashLength)
	assert.Equal(t, full[:hashutil.ShortHashLength], short)

	_, err = hashutil.ShortHash(data, "unknown")
	assert.Error(t, err)
}

func TestParseHashAlgo(t *testing.T) {
	tests := []struct {
		input   string
		want    hashutil.HashAlgo
		wantErr bool
	}{
		{input: "", want: hashutil.HashAlgoBLAKE3},
		{input: "blake3", want: hashutil.HashAlgoBLAKE3},
		{input: "BLAKE3", want: hashutil.HashAlgoBLAKE3},
		{input: " sha256 ", want: hashutil.HashAlgoSHA256},
		{input: "crc32", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := hashutil.ParseHashAlgo(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
