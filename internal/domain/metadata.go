package domain

import "encoding/json"

// EncodeMetadata serializes a flat string-to-string metadata map to its
// stored text form. A nil map encodes as an empty JSON object so the
// round trip through the store is exact for every input shape.
//
// Encoding a map[string]string cannot fail; the error return exists so a
// future codec change cannot silently swallow a failure, per the error
// taxonomy it surfaces as SerializationError.
func EncodeMetadata(metadata map[string]string) (string, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "", ErrSerialization(err, "encode group metadata")
	}
	return string(raw), nil
}

// DecodeMetadata parses the stored text form back into a map. An empty
// blob decodes to an empty map.
func DecodeMetadata(blob string) (map[string]string, error) {
	if blob == "" {
		return map[string]string{}, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(blob), &metadata); err != nil {
		return nil, ErrSerialization(err, "decode group metadata")
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	return metadata, nil
}
