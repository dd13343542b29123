package utils

import "encoding/base64"

// ShareableID derives the short opaque id embedded in shareable links:
// unpadded base64 of the record id, truncated to 12 characters.
func ShareableID(documentID string) string {
	encoded := base64.RawStdEncoding.EncodeToString([]byte(documentID))
	if len(encoded) > 12 {
		encoded = encoded[:12]
	}
	return encoded
}
