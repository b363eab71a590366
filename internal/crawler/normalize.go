package crawler

import (
	"net"
	"net/url"
	"strings"
)

// Normalize resolves href against base and returns the canonical form used
// as the crawl dedup key. It reports false for empty or malformed hrefs,
// for schemes other than http and https, and for results without a host.
func Normalize(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" || u.Opaque != "" {
		return nil, false
	}

	u.Host = canonicalHost(u.Scheme, u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u, true
}

// Origin returns scheme://host[:port] for u. Default ports are omitted, so
// a normalized URL compares equal to the origin it was resolved from.
func Origin(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + canonicalHost(strings.ToLower(u.Scheme), u.Host)
}

// canonicalHost lower-cases the host and drops the scheme's default port.
func canonicalHost(scheme, host string) string {
	host = strings.ToLower(host)
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}
