// Package urlnorm canonicalizes and deduplicates source URLs returned by the
// RAG backend so each source is shown once.
package urlnorm

import (
	"net"
	"net/url"
	"strings"
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Normalize returns the canonical display form of raw:
// https scheme, lowercase host without "www.", no default port, no bare
// "/" path and no trailing slash. Strings that do not look like URLs are
// returned trimmed.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if schemeEnd(s) < 0 {
		if isOpaque(s) || !looksLikeHost(s) {
			return s
		}
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" || u.Opaque != "" {
		return textualCleanup(s)
	}

	scheme := strings.ToLower(u.Scheme)
	port := u.Port()
	if port == defaultPorts[scheme] {
		port = ""
	}
	if scheme == "http" {
		scheme = "https"
	}
	if port == defaultPorts[scheme] {
		port = ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	if port != "" {
		b.WriteString(net.JoinHostPort(strings.Trim(host, "[]"), port))
	} else {
		b.WriteString(host)
	}

	path := u.EscapedPath()
	if path != "" && path != "/" {
		b.WriteString(strings.TrimSuffix(path, "/"))
	}
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.EscapedFragment())
	}
	return b.String()
}

// Dedupe normalizes urls and drops blanks and case-insensitive duplicates,
// keeping the first occurrence and its casing.
func Dedupe(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, raw := range urls {
		n := Normalize(raw)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// schemeEnd returns the index of the "://" that ends a leading scheme, or
// -1 when s does not start with one. A "://" inside a path or query does
// not count.
func schemeEnd(s string) int {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return -1
	}
	for i := 0; i < idx; i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return -1
		}
	}
	return idx
}

func looksLikeHost(s string) bool {
	return strings.Contains(s, ".") || strings.HasPrefix(strings.ToLower(s), "www.")
}

func isOpaque(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}

// textualCleanup is the fallback for strings net/url rejects.
func textualCleanup(s string) string {
	idx := schemeEnd(s)
	if idx < 0 {
		s = strings.TrimPrefix(s, "www.")
		return s
	}

	prefix, rest := s[:idx+3], s[idx+3:]
	rest = strings.TrimPrefix(rest, "www.")
	if slash := strings.Index(rest, "/"); slash >= 0 && slash < len(rest)-1 {
		rest = strings.TrimSuffix(rest, "/")
	}
	return prefix + rest
}
