package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// APIKeyParam is the query parameter carrying the API key.
const APIKeyParam = "api_key"

// redactedValue replaces the API key wherever it would be logged.
const redactedValue = "***"

// RequestOptions carries per-call query parameters, headers and body.
type RequestOptions struct {
	// Query values may be scalars, slices (comma joined) or nested maps
	// (encoded as key[sub]=value).
	Query   map[string]any
	Headers map[string]string
	Body    []byte
}

// encodeQuery flattens a query mapping into url.Values.
func encodeQuery(dst url.Values, query map[string]any) error {
	for key, value := range query {
		if err := encodeValue(dst, key, value); err != nil {
			return err
		}
	}
	return nil
}

func encodeValue(dst url.Values, key string, value any) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case map[string]any:
		for sub, inner := range v {
			if err := encodeValue(dst, key+"["+sub+"]", inner); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		for sub, inner := range v {
			dst.Set(key+"["+sub+"]", inner)
		}
		return nil
	case []byte:
		dst.Set(key, string(v))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := cast.ToStringE(rv.Index(i).Interface())
			if err != nil {
				return fmt.Errorf("query parameter %q: %w", key, err)
			}
			parts = append(parts, s)
		}
		dst.Set(key, strings.Join(parts, ","))
		return nil
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Errorf("query parameter %q: %w", key, err)
	}
	dst.Set(key, s)
	return nil
}

// redactOptions returns a log-safe copy of opts with the API key masked.
func redactOptions(opts *RequestOptions) map[string]any {
	out := make(map[string]any, 3)

	query := make(map[string]any, len(opts.Query))
	for k, v := range opts.Query {
		if k == APIKeyParam {
			query[k] = redactedValue
			continue
		}
		query[k] = v
	}
	out["query"] = query

	if len(opts.Headers) > 0 {
		headers := make(map[string]string, len(opts.Headers))
		for k, v := range opts.Headers {
			if isCredentialHeader(k) {
				v = redactedValue
			}
			headers[k] = v
		}
		out["headers"] = headers
	}
	if len(opts.Body) > 0 {
		out["body_bytes"] = len(opts.Body)
	}
	return out
}

// credentialHeaders are masked in logs like the api_key parameter.
var credentialHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"X-Api-Key":           true,
}

func isCredentialHeader(name string) bool {
	return credentialHeaders[http.CanonicalHeaderKey(name)]
}

// redactURL masks the API key in a raw URL string.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	if !q.Has(APIKeyParam) {
		return raw
	}
	q.Set(APIKeyParam, redactedValue)
	u.RawQuery = encodeSorted(q)
	return u.String()
}

// encodeSorted encodes q without escaping the redaction mask.
func encodeSorted(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range q[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			if k == APIKeyParam {
				b.WriteString(v)
				continue
			}
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// redactError scrubs the API key from URLs embedded in transport errors.
func redactError(err error, apiKey string) error {
	if err == nil {
		return nil
	}
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: redactURL(ue.URL), Err: ue.Err}
	}
	if apiKey != "" && strings.Contains(err.Error(), apiKey) {
		return &redactedError{msg: strings.ReplaceAll(err.Error(), apiKey, redactedValue), err: err}
	}
	return err
}

// redactedError keeps the cause chain while hiding the key in its message.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
