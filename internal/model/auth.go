package model

import (
	"fmt"
	"strings"
)

// AuthMode selects how the API secret is sent.
type AuthMode string

const (
	// AuthInlineKey puts the secret in the URL as the apiKey query parameter.
	AuthInlineKey AuthMode = "inline"
	// AuthHeaderBearer sends the secret as "Authorization: Bearer <token>".
	AuthHeaderBearer AuthMode = "header"
)

func (m AuthMode) String() string { return string(m) }

// ParseAuthMode accepts inline|url|query and header|bearer (any case).
func ParseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inline", "url", "query":
		return AuthInlineKey, nil
	case "header", "bearer":
		return AuthHeaderBearer, nil
	default:
		return "", fmt.Errorf("unsupported auth mode %q (use: inline, header, both)", s)
	}
}

// AuthModes expands a flag value into the modes to run.
// "both" yields inline then header, the order of the reference flow.
func AuthModes(s string) ([]AuthMode, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []AuthMode{AuthInlineKey, AuthHeaderBearer}, nil
	}
	m, err := ParseAuthMode(s)
	if err != nil {
		return nil, err
	}
	return []AuthMode{m}, nil
}
