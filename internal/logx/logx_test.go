package logx

import (
	"strings"
	"testing"
	"time"
)

func TestFormatFieldsOrder(t *testing.T) {
	out := formatFields(map[string]any{
		"request_id":  "r1",
		"cache":       "hit",
		"platform":    "ios",
		"bundle_type": "bundle",
		"entry":       "/srv/app/index.js",
	})
	want := "bundle_type=bundle platform=ios entry=/srv/app/index.js cache=hit request_id=r1"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestFormatFieldsSkipsEmpty(t *testing.T) {
	out := formatFields(map[string]any{
		"platform": "",
		"error":    nil,
		"cache":    "miss",
	})
	if out != "cache=miss" {
		t.Fatalf("unexpected fields: %q", out)
	}
}

func TestFormatRequestLineWithoutColor(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 12, 40, 0, time.UTC)
	line := FormatRequestLineWithColor(ts, 404, 3*time.Millisecond, " 127.0.0.1 ", "GET", "/index.foo", nil, false)
	want := `[BURL] 2026/10/18 - 09:12:40 | 404 | 3ms | 127.0.0.1 | GET "/index.foo"`
	if line != want {
		t.Fatalf("got %q want %q", line, want)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("unexpected color codes: %q", line)
	}
}

func TestColorizeStatusWith(t *testing.T) {
	if got := ColorizeStatusWith(200, true); !strings.HasPrefix(got, "\x1b[32m") {
		t.Fatalf("200 should be green: %q", got)
	}
	if got := ColorizeStatusWith(503, true); !strings.HasPrefix(got, "\x1b[31m") {
		t.Fatalf("503 should be red: %q", got)
	}
}
