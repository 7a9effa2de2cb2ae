package polygon

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"aggbars/internal/model"
)

// DefaultBaseURL is the aggregates resource of the Polygon v2 API.
const DefaultBaseURL = "https://api.polygon.io/v2/aggs"

var validate = newValidator()

// newValidator reports fields by their json name when one is set.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// ValidateQuery checks q and returns a *ConfigError for the first invalid field.
func ValidateQuery(q model.Query) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ConfigError{Field: fe.Field(), Reason: queryReason(fe)}
	}
	return &ConfigError{Field: "query", Reason: err.Error()}
}

func queryReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// BuildURL assembles the aggregates URL for q:
//
//	{base}/ticker/{ticker}/range/{multiplier}/{timespan}/{from}/{to}?adjusted=..&sort=..[&apiKey=..]
//
// apiKey is appended only in inline mode. The ticker is escaped only as far as a
// path segment requires; callers pass valid symbols.
func BuildURL(base string, q model.Query, mode model.AuthMode, token string) (string, error) {
	if err := ValidateQuery(q); err != nil {
		return "", err
	}
	creds, err := Authenticate(mode, token)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString("/ticker/")
	b.WriteString(url.PathEscape(q.Ticker))
	b.WriteString("/range/")
	b.WriteString(strconv.Itoa(q.Multiplier))
	b.WriteByte('/')
	b.WriteString(q.Timespan.String())
	b.WriteByte('/')
	b.WriteString(q.From)
	b.WriteByte('/')
	b.WriteString(q.To)

	// url.Values.Encode sorts keys; the documented order is adjusted, sort, apiKey.
	b.WriteString("?adjusted=")
	b.WriteString(strconv.FormatBool(q.Adjusted))
	b.WriteString("&sort=")
	b.WriteString(q.Sort.String())
	if creds.InlineKey != "" {
		b.WriteString("&apiKey=")
		b.WriteString(url.QueryEscape(creds.InlineKey))
	}
	return b.String(), nil
}

// RedactURL masks the apiKey query value so the URL can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("apiKey") == "" {
		return raw
	}
	// Rewrite in place to keep parameter order.
	parts := strings.Split(u.RawQuery, "&")
	for i, p := range parts {
		if strings.HasPrefix(p, "apiKey=") {
			parts[i] = "apiKey=REDACTED"
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}
