package controllers

import (
	"net"
	"net/http"
	"strings"
)

// proxyAddrHeaders are checked in order of preference for the original
// client address when proxy headers are trusted.
var proxyAddrHeaders = []string{
	"X-Forwarded-For",
	"X-Real-Ip",
	"Cf-Connecting-Ip",
	"X-Client-Ip",
	"X-Forwarded",
	"Forwarded-For",
	"Forwarded",
}

// ClientAddr extracts the client address for a request. With trustProxy set
// it walks the proxy headers first, taking the first public address from
// comma-separated lists; otherwise (or when nothing usable is found) it
// falls back to the connection's remote address, then "unknown".
func ClientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyAddrHeaders {
			v := r.Header.Get(h)
			if v == "" {
				continue
			}
			for _, part := range strings.Split(v, ",") {
				ip := strings.TrimSpace(part)
				// RFC 7239 Forwarded values look like "for=1.2.3.4".
				ip = strings.TrimPrefix(ip, "for=")
				ip = strings.Trim(ip, `"`)
				if ip != "" && !isPrivateAddr(ip) {
					return ip
				}
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// isPrivateAddr reports whether ip is a private, loopback, or link-local
// address. Unparseable values count as private so garbage header entries
// never win over the real remote address.
func isPrivateAddr(ip string) bool {
	if ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
