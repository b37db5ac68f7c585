package bundleurl

import (
	"sort"
	"strings"
)

// BundleType is the artifact kind requested by a URL.
type BundleType string

const (
	BundleTypeBundle BundleType = "bundle"
	BundleTypeDelta  BundleType = "delta"
	BundleTypeMap    BundleType = "map"
)

// SourceExt is the extension every resolved entry file carries.
const SourceExt = ".js"

func parseBundleType(s string) (BundleType, bool) {
	switch BundleType(s) {
	case BundleTypeBundle, BundleTypeDelta, BundleTypeMap:
		return BundleType(s), true
	default:
		return "", false
	}
}

// HasSourceMap reports whether requests of this kind get a companion map URL.
func (t BundleType) HasSourceMap() bool {
	return t == BundleTypeBundle || t == BundleTypeDelta
}

func (t BundleType) String() string { return string(t) }

// TransformOptions holds the custom transform options extracted from the query.
type TransformOptions map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (o TransformOptions) Clone() TransformOptions {
	out := make(TransformOptions, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Options is the resolved form of a bundler request URL.
//
// Empty Platform, DeltaBundleID and SourceMapURL mean the value is absent.
type Options struct {
	BundleType       BundleType       `json:"bundleType" yaml:"bundleType"`
	EntryFile        string           `json:"entryFile" yaml:"entryFile"`
	Platform         string           `json:"platform,omitempty" yaml:"platform,omitempty"`
	DeltaBundleID    string           `json:"deltaBundleId,omitempty" yaml:"deltaBundleId,omitempty"`
	SourceMapURL     string           `json:"sourceMapUrl,omitempty" yaml:"sourceMapUrl,omitempty"`
	Hot              bool             `json:"hot" yaml:"hot"`
	Dev              bool             `json:"dev" yaml:"dev"`
	Minify           bool             `json:"minify" yaml:"minify"`
	ExcludeSource    bool             `json:"excludeSource" yaml:"excludeSource"`
	InlineSourceMap  bool             `json:"inlineSourceMap" yaml:"inlineSourceMap"`
	RunModule        bool             `json:"runModule" yaml:"runModule"`
	TransformOptions TransformOptions `json:"transformOptions" yaml:"transformOptions"`
}

// Clone returns a copy that shares no mutable state with o.
func (o Options) Clone() Options {
	o.TransformOptions = o.TransformOptions.Clone()
	return o
}

// PlatformSet is the set of platform names that may appear in a request path.
type PlatformSet map[string]struct{}

// NewPlatformSet builds a set from names, skipping blanks.
func NewPlatformSet(names ...string) PlatformSet {
	s := make(PlatformSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

func (s PlatformSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members in sorted order.
func (s PlatformSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s PlatformSet) clone() PlatformSet {
	out := make(PlatformSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}
