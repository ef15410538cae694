package docs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// replacer substitutes {token}, {js_token}, {proxy_token} and {storage_token}.
// Optional tokens fall back to the normal token.
func replacer(t models.ProfileTokens) *strings.Replacer {
	return strings.NewReplacer(
		"{token}", t.Normal,
		"{js_token}", t.JSOrNormal(),
		"{proxy_token}", t.ProxyOrNormal(),
		"{storage_token}", t.StorageOrNormal(),
	)
}

// Request is an example rendered for dispatch.
type Request struct {
	Method string
	Path   string
	Params map[string]string
}

// IsGet reports whether the request is sent as a GET with query params.
// Every other method is sent as a form POST.
func (r Request) IsGet() bool {
	return strings.EqualFold(r.Method, "GET")
}

// Render builds the request for an example. Query params from the path are
// overridden by sample params, which are overridden by overrides.
func Render(example Node, tokens models.ProfileTokens, overrides map[string]any) Request {
	rep := replacer(tokens)

	path, rawQuery, _ := strings.Cut(example.Path, "?")
	if path == "" {
		path = "/"
	}

	params := make(map[string]string)
	query, _ := url.ParseQuery(rawQuery)
	for key, values := range query {
		if len(values) == 0 || values[len(values)-1] == "" {
			continue
		}
		params[key] = rep.Replace(values[len(values)-1])
	}
	for key, value := range example.SampleParams {
		params[key] = rep.Replace(value)
	}
	for key, value := range overrides {
		params[key] = paramString(value)
	}

	return Request{
		Method: example.Method,
		Path:   rep.Replace(path),
		Params: params,
	}
}

func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	}
	return fmt.Sprint(v)
}
