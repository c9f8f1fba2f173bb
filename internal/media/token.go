package media

import (
	"encoding/base64"
	"encoding/json"
)

// Defaults substituted for metadata missing from a direct upload.
const (
	DefaultUploaderName = "Anonymous User"
	DefaultDescription  = "No description provided"
)

// uploadToken is the client-supplied completion token: base64-encoded JSON
// carrying the metadata chosen at presigned-URL issuance time.
type uploadToken struct {
	UploaderName string `json:"uploaderName"`
	Description  string `json:"description"`
	ObjectName   string `json:"objectName"`
}

// decodeUploadToken parses a completion token. Decoding is defensive: any
// malformed token returns ok=false and the caller falls back to form fields
// instead of failing the request.
func decodeUploadToken(raw string) (uploadToken, bool) {
	if raw == "" {
		return uploadToken{}, false
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return uploadToken{}, false
	}
	var t uploadToken
	if err := json.Unmarshal(data, &t); err != nil {
		return uploadToken{}, false
	}
	return t, true
}
