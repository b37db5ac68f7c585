package bundleurl

import (
	"fmt"
	"path"
	"strings"
)

// Legacy request-shape markers. They used to toggle options and are now ignored.
var modifierTokens = map[string]struct{}{
	"includeRequire": {},
	"runModule":      {},
	"assets":         {},
}

func isModifier(seg string) bool {
	_, ok := modifierTokens[seg]
	return ok
}

type pathInfo struct {
	bundleType BundleType
	platform   string
	// entry is relative to the project root, slash separated, without a leading slash.
	entry string
	// mapPath is the request pathname with the artifact kind replaced by "map".
	mapPath string
}

func parsePathname(pathname string, platforms PlatformSet) (pathInfo, error) {
	dir, base := path.Split(pathname)
	parts := strings.Split(base, ".")
	name, segs := parts[0], parts[1:]

	kindIdx := -1
	for i := len(segs) - 1; i >= 0; i-- {
		if !isModifier(segs[i]) {
			kindIdx = i
			break
		}
	}
	if kindIdx < 0 {
		return pathInfo{}, fmt.Errorf("%w: %q has no extension", ErrUnrecognizedArtifactKind, pathname)
	}
	kind, ok := parseBundleType(segs[kindIdx])
	if !ok {
		return pathInfo{}, fmt.Errorf("%w: .%s", ErrUnrecognizedArtifactKind, segs[kindIdx])
	}

	middle := make([]string, 0, kindIdx)
	for _, seg := range segs[:kindIdx] {
		if isModifier(seg) {
			continue
		}
		// name.bundle.map and friends
		if _, isKind := parseBundleType(seg); isKind {
			continue
		}
		middle = append(middle, seg)
	}

	platform := ""
	if i := platformIndex(middle, platforms); i >= 0 {
		platform = middle[i]
		middle = append(middle[:i:i], middle[i+1:]...)
	}

	entryBase := strings.Join(append([]string{name}, middle...), ".") + SourceExt
	entry := strings.TrimPrefix(path.Clean("/"+dir+entryBase), "/")

	mapSegs := append([]string{name}, segs...)
	mapSegs[kindIdx+1] = string(BundleTypeMap)

	return pathInfo{
		bundleType: kind,
		platform:   platform,
		entry:      entry,
		mapPath:    dir + strings.Join(mapSegs, "."),
	}, nil
}

// platformIndex returns the position of the only segment naming a known
// platform, or -1 when none or several do.
func platformIndex(segs []string, platforms PlatformSet) int {
	found := -1
	for i, seg := range segs {
		if !platforms.Has(seg) {
			continue
		}
		if found >= 0 {
			return -1
		}
		found = i
	}
	return found
}

// joinRoot places rel under root with exactly one separator between them.
func joinRoot(root, rel string) string {
	return strings.TrimRight(root, `/\`) + "/" + strings.TrimLeft(rel, "/")
}
