// Package validate rejects malformed audit URLs before any network call.
package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// validTLDs is the allow-list of recognized domain extensions.
var validTLDs = map[string]struct{}{}

func init() {
	for _, tld := range []string{
		"com", "org", "net", "edu", "gov", "io", "co", "in", "uk", "us", "de", "fr",
		"jp", "cn", "ru", "br", "au", "ca", "es", "it", "nl", "pl", "se", "ch", "at",
		"be", "dk", "fi", "no", "nz", "za", "sg", "hk", "kr", "tw", "mx", "ar", "cl",
		"info", "biz", "me", "tv", "cc", "xyz", "online", "site", "tech", "dev", "app",
		"ai", "cloud", "digital", "solutions", "agency", "design", "studio", "blog",
		"shop", "store", "news", "media", "group", "global", "world", "asia", "eu",
	} {
		validTLDs[tld] = struct{}{}
	}
}

// AuditURL validates a user-supplied URL and returns its normalized form
// (https:// prepended when no scheme is present). The host must carry a
// recognized TLD; an unknown extension produces an error suggesting ".com".
func AuditURL(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("please enter a URL")
	}

	normalized := input
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("invalid URL format")
	}

	parts := strings.Split(parsed.Hostname(), ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid URL format")
	}

	tld := strings.ToLower(parts[len(parts)-1])
	if _, ok := validTLDs[tld]; !ok {
		return "", fmt.Errorf("invalid domain extension %q. Did you mean \".com\"?", "."+tld)
	}

	return normalized, nil
}
