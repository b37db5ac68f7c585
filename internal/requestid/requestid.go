package requestid

import (
	crand "crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const HeaderKey = "X-Request-Id"

// Gen returns <unix-millis base36>-<8 random hex chars>, e.g. "mg1x2k9s-3fa81c0d".
func Gen() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + randomHex(4)
}

// FromHeader returns the trimmed incoming id, or a fresh one when it is empty
// or too long to be echoed back safely.
func FromHeader(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 128 {
		return Gen()
	}
	return v
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		// best effort fallback
		return strings.Repeat("0", 2*n)
	}
	return hex.EncodeToString(b)
}
