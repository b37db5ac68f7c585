package bundleurl

import (
	"net/url"
	"strings"
)

// DefaultTransformPrefix marks query parameters carrying custom transform options.
const DefaultTransformPrefix = "transform."

// TransformOptionsParser turns the query parameters the resolver does not
// recognize into custom transform options. The resolver stores the returned
// value verbatim.
type TransformOptionsParser interface {
	ParseTransformOptions(params url.Values) TransformOptions
}

// TransformOptionsParserFunc adapts a function to TransformOptionsParser.
type TransformOptionsParserFunc func(params url.Values) TransformOptions

func (f TransformOptionsParserFunc) ParseTransformOptions(params url.Values) TransformOptions {
	return f(params)
}

// PrefixTransformParser collects parameters named <Prefix><option>. The first
// value of each such parameter is kept under <option>; everything else is ignored.
type PrefixTransformParser struct {
	Prefix string
}

func (p PrefixTransformParser) ParseTransformOptions(params url.Values) TransformOptions {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultTransformPrefix
	}
	out := TransformOptions{}
	for k, vs := range params {
		if !strings.HasPrefix(k, prefix) || len(vs) == 0 {
			continue
		}
		name := strings.TrimPrefix(k, prefix)
		if name == "" {
			continue
		}
		out[name] = vs[0]
	}
	return out
}
