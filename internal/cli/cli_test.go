package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestResolve_JSON(t *testing.T) {
	out, err := execute(t, "resolve", "-c", missingConfig(t), "--root", "/srv/app", "-p", "ios",
		"http://localhost:8081/index.ios.bundle?minify=true")
	require.NoError(t, err)

	var o bundleurl.Options
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	require.Equal(t, "/srv/app/index.js", o.EntryFile)
	require.Equal(t, "ios", o.Platform)
	require.True(t, o.Minify)
	require.Equal(t, "http://localhost:8081/index.ios.map?minify=true", o.SourceMapURL)
}

func TestResolve_YAML(t *testing.T) {
	out, err := execute(t, "resolve", "-c", missingConfig(t), "--root", "/srv/app", "-o", "yaml",
		"http://localhost/a.map", "http://localhost/b.delta?deltaBundleId=42")
	require.NoError(t, err)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	require.Equal(t, "map", first["bundleType"])
	require.NotContains(t, first, "sourceMapUrl")
	require.Equal(t, "delta", second["bundleType"])
	require.Equal(t, "42", second["deltaBundleId"])
}

func TestResolve_PlatformFlagOverridesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bundleurl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bundler:\n  project_root: /cfg\n  platforms: [ios]\n"), 0o600))

	out, err := execute(t, "resolve", "-c", cfgPath, "http://localhost/index.ios.bundle")
	require.NoError(t, err)
	require.Contains(t, out, `"entryFile": "/cfg/index.js"`)

	out, err = execute(t, "resolve", "-c", cfgPath, "-p", "web", "http://localhost/index.ios.bundle")
	require.NoError(t, err)
	require.Contains(t, out, `"entryFile": "/cfg/index.ios.js"`)
}

func TestResolve_Errors(t *testing.T) {
	_, err := execute(t, "resolve", "-c", missingConfig(t), "--root", "/srv/app", "http://localhost/index.foo")
	require.True(t, errors.Is(err, bundleurl.ErrUnrecognizedArtifactKind), "err=%v", err)

	_, err = execute(t, "resolve", "-c", missingConfig(t), "--root", "/srv/app", "-o", "xml", "http://localhost/index.bundle")
	require.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "resolve")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bundleurl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bundler:\n  project_root: /srv/app\n  platforms: [web, ios]\n"), 0o600))

	out, err := execute(t, "validate", "-c", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, "ok: project_root=/srv/app")
	require.Contains(t, out, "ok: platforms=[ios web]")
	require.Contains(t, out, "configuration ok")

	require.NoError(t, os.WriteFile(cfgPath, []byte("bundler:\n  project_root: /srv/app\n  platforms: [ios, ios]\n"), 0o600))
	_, err = execute(t, "validate", "-c", cfgPath)
	require.ErrorContains(t, err, "duplicate")

	_, err = execute(t, "validate", "-c", missingConfig(t))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "bundleurl "), out)

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))
}
