package bundleurl

import "net/url"

const (
	paramPlatform        = "platform"
	paramDeltaBundleID   = "deltaBundleId"
	paramDev             = "dev"
	paramMinify          = "minify"
	paramExcludeSource   = "excludeSource"
	paramInlineSourceMap = "inlineSourceMap"
	paramRunModule       = "runModule"
)

type boolFlag struct {
	name string
	def  bool
	set  func(o *Options, v bool)
}

var boolFlags = []boolFlag{
	{paramDev, true, func(o *Options, v bool) { o.Dev = v }},
	{paramMinify, false, func(o *Options, v bool) { o.Minify = v }},
	{paramExcludeSource, false, func(o *Options, v bool) { o.ExcludeSource = v }},
	{paramInlineSourceMap, false, func(o *Options, v bool) { o.InlineSourceMap = v }},
	{paramRunModule, true, func(o *Options, v bool) { o.RunModule = v }},
}

var knownParams = func() map[string]struct{} {
	m := map[string]struct{}{
		paramPlatform:      {},
		paramDeltaBundleID: {},
	}
	for _, f := range boolFlags {
		m[f.name] = struct{}{}
	}
	return m
}()

// BoolParamDefaults returns the boolean query flags with their defaults.
func BoolParamDefaults() map[string]bool {
	out := make(map[string]bool, len(boolFlags))
	for _, f := range boolFlags {
		out[f.name] = f.def
	}
	return out
}

func applyQuery(o *Options, q url.Values, tp TransformOptionsParser) {
	if v := q.Get(paramPlatform); v != "" {
		o.Platform = v
	}
	o.DeltaBundleID = q.Get(paramDeltaBundleID)
	for _, f := range boolFlags {
		f.set(o, queryBool(q, f.name, f.def))
	}

	opts := tp.ParseTransformOptions(remainingParams(q))
	if opts == nil {
		opts = TransformOptions{}
	}
	o.TransformOptions = opts
}

// queryBool only understands the literals "true" and "false".
func queryBool(q url.Values, name string, def bool) bool {
	vs := q[name]
	if len(vs) == 0 {
		return def
	}
	switch vs[0] {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

func remainingParams(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		if _, ok := knownParams[k]; ok {
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}
