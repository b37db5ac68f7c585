package requestid

import (
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9a-z]+-[0-9a-f]{8}$`)

func TestGen(t *testing.T) {
	a, b := Gen(), Gen()
	if !idPattern.MatchString(a) {
		t.Fatalf("unexpected id format: %q", a)
	}
	if a == b {
		t.Fatalf("ids should differ: %q", a)
	}
}

func TestFromHeader(t *testing.T) {
	if got := FromHeader("  abc  "); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := FromHeader(""); !idPattern.MatchString(got) {
		t.Fatalf("empty header should generate: %q", got)
	}
	if got := FromHeader(strings.Repeat("x", 200)); !idPattern.MatchString(got) {
		t.Fatalf("oversized header should generate: %q", got)
	}
}
