package resolve

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

func newService(t *testing.T, size int, platforms ...string) *Service {
	t.Helper()
	svc, err := New(Settings{
		ProjectRoot: "/srv/app",
		Platforms:   bundleurl.NewPlatformSet(platforms...),
	}, size)
	require.NoError(t, err)
	return svc
}

func TestService_ResolveCaches(t *testing.T) {
	svc := newService(t, 8, "ios")
	const u = "http://localhost:8081/index.ios.bundle?transform.engine=hermes"

	o, hit, err := svc.Resolve(u)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "ios", o.Platform)
	require.Equal(t, "/srv/app/index.js", o.EntryFile)

	// callers must not be able to corrupt the cached value
	o.TransformOptions["engine"] = "mutated"

	again, hit, err := svc.Resolve(u)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "hermes", again.TransformOptions["engine"])
	require.Equal(t, 1, svc.CacheLen())
}

func TestService_ErrorsNotCached(t *testing.T) {
	svc := newService(t, 8)
	_, _, err := svc.Resolve("http://localhost/index.foo")
	require.True(t, errors.Is(err, bundleurl.ErrUnrecognizedArtifactKind))
	require.Equal(t, 0, svc.CacheLen())
}

func TestService_CacheDisabled(t *testing.T) {
	svc := newService(t, 0)
	for i := 0; i < 2; i++ {
		_, hit, err := svc.Resolve("http://localhost/index.bundle")
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, 0, svc.CacheLen())
}

func TestService_Reconfigure(t *testing.T) {
	svc := newService(t, 8, "ios")
	const u = "http://localhost/index.web.bundle"

	o, _, err := svc.Resolve(u)
	require.NoError(t, err)
	require.Empty(t, o.Platform)
	require.Equal(t, "/srv/app/index.web.js", o.EntryFile)

	svc.Reconfigure(Settings{
		ProjectRoot:     "/other",
		Platforms:       bundleurl.NewPlatformSet("web", "ios"),
		TransformPrefix: "custom.",
	})
	require.Equal(t, 0, svc.CacheLen())
	require.Equal(t, "/other", svc.ProjectRoot())
	require.Equal(t, []string{"ios", "web"}, svc.Platforms())

	o, hit, err := svc.Resolve(u + "?custom.k=v&transform.k=ignored")
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "web", o.Platform)
	require.Equal(t, "/other/index.js", o.EntryFile)
	require.Equal(t, bundleurl.TransformOptions{"k": "v"}, o.TransformOptions)
}

func TestService_ConcurrentResolve(t *testing.T) {
	svc := newService(t, 4, "ios", "android")
	urls := []string{
		"http://localhost/a.ios.bundle",
		"http://localhost/b.android.delta",
		"http://localhost/c.map",
		"http://localhost/d.bundle",
		"http://localhost/e.bundle",
		"http://localhost/f.bundle",
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if j == 25 && i == 0 {
					svc.Reconfigure(Settings{ProjectRoot: "/srv/app", Platforms: bundleurl.NewPlatformSet("ios", "android")})
				}
				u := urls[(i+j)%len(urls)]
				o, _, err := svc.Resolve(u)
				if err != nil {
					t.Errorf("resolve %s: %v", u, err)
					return
				}
				if o.EntryFile == "" {
					t.Errorf("resolve %s: empty entry", u)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, svc.CacheLen(), 4)
}
