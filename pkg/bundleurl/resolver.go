package bundleurl

import (
	"fmt"
	"net/url"
)

// Resolver resolves request URLs against a fixed project root and platform set.
type Resolver struct {
	root      string
	platforms PlatformSet
	transform TransformOptionsParser
}

type ResolverOption func(*Resolver)

// WithTransformParser replaces the default PrefixTransformParser.
func WithTransformParser(p TransformOptionsParser) ResolverOption {
	return func(r *Resolver) {
		if p != nil {
			r.transform = p
		}
	}
}

func NewResolver(projectRoot string, platforms PlatformSet, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		root:      projectRoot,
		platforms: platforms.clone(),
		transform: PrefixTransformParser{Prefix: DefaultTransformPrefix},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) ProjectRoot() string { return r.root }

// Platforms returns a copy of the known platform set.
func (r *Resolver) Platforms() PlatformSet { return r.platforms.clone() }

// Resolve parses rawURL into Options. Errors wrap ErrMalformedRequestURL or
// ErrUnrecognizedArtifactKind.
func (r *Resolver) Resolve(rawURL string) (Options, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrMalformedRequestURL, err)
	}

	p, err := parsePathname(u.Path, r.platforms)
	if err != nil {
		return Options{}, err
	}

	o := Options{
		BundleType: p.bundleType,
		EntryFile:  joinRoot(r.root, p.entry),
		Platform:   p.platform,
		Hot:        true,
	}
	if o.BundleType.HasSourceMap() {
		o.SourceMapURL = sourceMapURL(u, p.mapPath)
	}

	// ParseQuery keeps every well-formed pair even when it reports an error.
	q, _ := url.ParseQuery(u.RawQuery)
	applyQuery(&o, q, r.transform)
	return o, nil
}

// Parse resolves rawURL with the default transform option parser.
func Parse(rawURL, projectRoot string, platforms PlatformSet) (Options, error) {
	return NewResolver(projectRoot, platforms).Resolve(rawURL)
}

func sourceMapURL(u *url.URL, mapPath string) string {
	m := *u
	m.Path = mapPath
	m.RawPath = ""
	m.Fragment = ""
	m.RawFragment = ""
	return m.String()
}
