package resolve

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/r9s-ai/bundleurl/internal/config"
	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

// Settings are the inputs a Service resolves against.
type Settings struct {
	ProjectRoot     string
	Platforms       bundleurl.PlatformSet
	TransformPrefix string
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		ProjectRoot:     cfg.Bundler.ProjectRoot,
		Platforms:       cfg.PlatformSet(),
		TransformPrefix: cfg.Bundler.TransformPrefix,
	}
}

// Service shares one resolver between requests and memoizes results by URL.
// Resolution is deterministic, so a cached entry stays valid until the
// settings change.
type Service struct {
	mu       sync.RWMutex
	resolver *bundleurl.Resolver
	cache    *lru.Cache[string, bundleurl.Options]
}

// New builds a Service. cacheSize <= 0 disables memoization.
func New(s Settings, cacheSize int) (*Service, error) {
	svc := &Service{resolver: newResolver(s)}
	if cacheSize > 0 {
		c, err := lru.New[string, bundleurl.Options](cacheSize)
		if err != nil {
			return nil, err
		}
		svc.cache = c
	}
	return svc, nil
}

func newResolver(s Settings) *bundleurl.Resolver {
	return bundleurl.NewResolver(
		s.ProjectRoot,
		s.Platforms,
		bundleurl.WithTransformParser(bundleurl.PrefixTransformParser{Prefix: s.TransformPrefix}),
	)
}

// Resolve returns the options for rawURL and whether they came from the cache.
// Failed resolutions are never cached.
func (s *Service) Resolve(rawURL string) (bundleurl.Options, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache != nil {
		if o, ok := s.cache.Get(rawURL); ok {
			return o.Clone(), true, nil
		}
	}
	o, err := s.resolver.Resolve(rawURL)
	if err != nil {
		return bundleurl.Options{}, false, err
	}
	if s.cache != nil {
		s.cache.Add(rawURL, o.Clone())
	}
	return o, false, nil
}

// Reconfigure swaps in new settings and drops every cached result.
func (s *Service) Reconfigure(st Settings) {
	r := newResolver(st)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *Service) ProjectRoot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.ProjectRoot()
}

// Platforms returns the known platforms, sorted.
func (s *Service) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Platforms().Names()
}

// CacheLen reports the number of memoized URLs.
func (s *Service) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
