package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// clientTimeHeaders may carry the instant the client generated the event.
var clientTimeHeaders = []string{
	"X-Timestamp",
	"X-Client-Time",
	"X-Request-Time",
	"Timestamp",
}

// proxyTimeHeaders carry the instant infrastructure first saw the request
// (nginx/HAProxy use milliseconds, Heroku microseconds).
var proxyTimeHeaders = []string{
	"X-Request-Start",
	"X-Queue-Start",
	"X-Request-Received",
	"X-Forwarded-Start",
}

// GenerationTime extracts the event generation timestamp for a request:
// client timestamp headers first, then proxy timing headers, then the server
// receive time. Returned times are always naive local time; offsets in
// timezone-aware inputs are dropped, keeping the sender's clock reading.
// Future-dated values pass through untouched.
func GenerationTime(r *http.Request, trustHeaders bool, received time.Time) time.Time {
	if !trustHeaders {
		return received
	}
	for _, h := range clientTimeHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		if t, ok := parseClientTime(v); ok {
			return t
		}
	}
	for _, h := range proxyTimeHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		if t, ok := parseProxyTime(v); ok {
			return t
		}
	}
	return received
}

// parseClientTime accepts RFC3339 (with or without offset) and unix
// timestamps in seconds or milliseconds.
func parseClientTime(v string) (time.Time, bool) {
	if strings.Contains(v, "T") || strings.Contains(v, "-") {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return naive(t), true
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	ts, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, false
	}
	if ts > 1e10 { // likely milliseconds
		ts /= 1000
	}
	return fromUnixSeconds(ts), true
}

// parseProxyTime accepts unix timestamps in seconds, milliseconds, or
// microseconds, sometimes prefixed with "t=".
func parseProxyTime(v string) (time.Time, bool) {
	v = strings.TrimPrefix(v, "t=")
	ts, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, false
	}
	switch {
	case ts > 1e12: // likely microseconds
		ts /= 1e6
	case ts > 1e10: // likely milliseconds
		ts /= 1e3
	}
	return fromUnixSeconds(ts), true
}

func fromUnixSeconds(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// naive drops the offset of a timezone-aware instant, keeping its clock
// fields in local time.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}
