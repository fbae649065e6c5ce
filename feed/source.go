// Package feed proxies a third-party token-launch API for browsers that cannot call it directly.
//
// Only whitelisted upstream endpoints are fetched. Returned records are validated,
// truncated and reshaped into Token values before they leave the process.
package feed

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

var (
	ErrUnknownSource      = errors.New("unknown source")
	ErrInvalidLimit       = fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	ErrAllUpstreamsFailed = errors.New("all upstream endpoints failed")
	ErrBodyTooLarge       = errors.New("upstream response too large")
)

// Source is a whitelisted upstream endpoint
type Source struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// DefaultSources are the two endpoints the page polls
func DefaultSources() []Source {
	return []Source{
		{Name: "latest", URL: "https://frontend-api-v3.pump.fun/coins/latest"},
		{Name: "trending", URL: "https://frontend-api-v3.pump.fun/coins/currently-live?limit=50&offset=0&includeNsfw=false"},
	}
}

// ValidateSources checks names are unique and URLs absolute http(s)
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return errors.New("no upstream sources configured")
	}
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return errors.New("upstream source name is required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate upstream source %q", name)
		}
		seen[name] = struct{}{}
		if !httpURL(src.URL) {
			return fmt.Errorf("upstream source %q: url must be absolute http(s)", name)
		}
	}
	return nil
}

// ParseLimit reads the limit query value. Empty means DefaultLimit.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > MaxLimit {
		return 0, ErrInvalidLimit
	}
	return n, nil
}

func httpURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
