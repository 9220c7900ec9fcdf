package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTrip(t *testing.T) {
	cases := map[string]map[string]string{
		"empty":   {},
		"single":  {"owner": "security-team"},
		"multi":   {"owner": "security-team", "env": "production", "tier": "1"},
		"unicode": {"región": "ümlaut", "emoji": "🔒"},
		"tricky":  {"quote\"key": "back\\slash", "newline": "a\nb", "equals=": "x=y"},
	}

	for name, metadata := range cases {
		t.Run(name, func(t *testing.T) {
			encoded, err := EncodeMetadata(metadata)
			require.NoError(t, err)

			decoded, err := DecodeMetadata(encoded)
			require.NoError(t, err)
			assert.Equal(t, metadata, decoded)
		})
	}
}

func TestEncodeMetadata_Nil(t *testing.T) {
	encoded, err := EncodeMetadata(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", encoded)

	decoded, err := DecodeMetadata(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeMetadata_EmptyBlob(t *testing.T) {
	decoded, err := DecodeMetadata("")
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestDecodeMetadata_Malformed(t *testing.T) {
	_, err := DecodeMetadata("{not json")
	require.Error(t, err)

	var serr *SerializationError
	assert.ErrorAs(t, err, &serr)
}

func TestDecodeMetadata_WrongShape(t *testing.T) {
	// Values that are not flat string maps must surface as
	// SerializationError, never be silently coerced.
	_, err := DecodeMetadata(`{"nested": {"a": "b"}}`)
	require.Error(t, err)

	var serr *SerializationError
	assert.ErrorAs(t, err, &serr)
}
