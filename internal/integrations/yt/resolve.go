package yt

import (
	"net/url"
	"regexp"
	"strings"
)

// Validate video ID
var validVideoID = regexp.MustCompile("^[-a-zA-Z0-9_]{11}$")

// Find a v=<id> query-like fragment in free text.
// The id must not be followed by another id character.
var queryVideoID = regexp.MustCompile(`v=([-a-zA-Z0-9_]{11})(?:[^-a-zA-Z0-9_]|$)`)

// Detect an explicit URL scheme
var hasScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// extractor gets a candidate video ID from a parsed URL.
// The bool reports whether the URL shape was recognized at all.
type extractor func(u *url.URL) (string, bool)

type hostRule struct {
	matches func(host string) bool
	extract extractor
}

// Host rules evaluated in order, first match wins
var hostRules = []hostRule{
	{exactHost("youtu.be"), firstSegment},
	{domainHost("youtube.com"), oneOf(watchQuery, secondSegment("shorts"), secondSegment("embed"))},
	{domainHost("youtube-nocookie.com"), secondSegment("embed")},
}

// IsValidVideoID checks if the string is a canonical YouTube video ID
func IsValidVideoID(id string) bool {
	return validVideoID.MatchString(id)
}

// ResolveVideoID normalizes a raw ID, a watch, short, embed or shortlink URL,
// or free text carrying a v= parameter into a canonical video ID.
// Returns false if no valid ID can be extracted.
func ResolveVideoID(reference string) (string, bool) {

	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", false
	}

	// Already an ID
	if IsValidVideoID(ref) {
		return ref, true
	}

	if u, ok := parseReference(ref); ok {
		host := normalizeHost(u.Hostname())
		for _, rule := range hostRules {
			if !rule.matches(host) {
				continue
			}

			// A recognized shape must carry a valid ID
			if id, ok := rule.extract(u); ok {
				if !IsValidVideoID(id) {
					return "", false
				}
				return id, true
			}
			break
		}
	}

	// Scrape the raw string for a query-style ID
	if m := queryVideoID.FindStringSubmatch(ref); m != nil {
		return m[1], true
	}

	return "", false
}

// Parse the reference as URL, assume https if no scheme
func parseReference(ref string) (*url.URL, bool) {
	if !hasScheme.MatchString(ref) {
		ref = "https://" + ref
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return nil, false
	}

	return u, true
}

// Lowercase the host and strip a leading www. or m. label
func normalizeHost(host string) string {
	host = strings.ToLower(host)
	for _, prefix := range []string{"www.", "m."} {
		if h, found := strings.CutPrefix(host, prefix); found {
			return h
		}
	}
	return host
}

func exactHost(domain string) func(string) bool {
	return func(host string) bool {
		return host == domain
	}
}

// Match the domain itself or any of its subdomains
func domainHost(domain string) func(string) bool {
	return func(host string) bool {
		return host == domain || strings.HasSuffix(host, "."+domain)
	}
}

// Non-empty path segments
func segments(u *url.URL) []string {
	var parts []string
	for part := range strings.SplitSeq(u.Path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func firstSegment(u *url.URL) (string, bool) {
	parts := segments(u)
	if len(parts) == 0 {
		return "", true
	}
	return parts[0], true
}

func watchQuery(u *url.URL) (string, bool) {
	if u.Path != "/watch" {
		return "", false
	}
	return u.Query().Get("v"), true
}

func secondSegment(first string) extractor {
	return func(u *url.URL) (string, bool) {
		parts := segments(u)
		if len(parts) < 2 || parts[0] != first {
			return "", false
		}
		return parts[1], true
	}
}

func oneOf(extractors ...extractor) extractor {
	return func(u *url.URL) (string, bool) {
		for _, extract := range extractors {
			if id, ok := extract(u); ok {
				return id, true
			}
		}
		return "", false
	}
}
