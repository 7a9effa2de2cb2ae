package polygon

import (
	"net/http"

	"aggbars/internal/model"
)

// Credentials is how one request carries the secret: either in the URL
// (InlineKey set) or in Header, never both.
type Credentials struct {
	InlineKey string
	Header    http.Header
}

// Authenticate resolves mode and token into request credentials.
// The token is an already-resolved secret; an empty token is a *ConfigError.
func Authenticate(mode model.AuthMode, token string) (Credentials, error) {
	if token == "" {
		return Credentials{}, &ConfigError{Field: "apiKey", Reason: "secret must not be empty"}
	}
	switch mode {
	case model.AuthInlineKey:
		return Credentials{InlineKey: token, Header: http.Header{}}, nil
	case model.AuthHeaderBearer:
		h := http.Header{}
		h.Set("Authorization", "Bearer "+token)
		return Credentials{Header: h}, nil
	default:
		return Credentials{}, &ConfigError{Field: "auth", Reason: "unsupported mode " + string(mode)}
	}
}
