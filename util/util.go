// Package util provides utitlity functions.
package util

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	headerXForwardedFor = "X-Forwarded-For"
	headerXRealIP       = "X-Real-IP"
)

// IndicesToChan sends 0 through n-1 on the returned chan, then closes it
func IndicesToChan(n int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		for i := 0; i < n; i++ {
			out <- i
		}
	}()
	return out
}

// URLToDomain extracts domain from given link, without a leading www
func URLToDomain(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}

	host := u.Hostname()
	if host == "" {
		return "", errors.Errorf("no host in %q", link)
	}

	parts := strings.Split(host, ".")
	if len(parts) > 2 && strings.HasPrefix(parts[0], "www") {
		return strings.Join(parts[1:], "."), nil
	}

	return host, nil
}

// RealIP tries to extract real ip from request r using X-Forwarded-For and X-Real-IP headers
func RealIP(r *http.Request) string {
	ra := r.RemoteAddr
	if ip := r.Header.Get(headerXForwardedFor); ip != "" {
		ra = strings.Split(ip, ", ")[0]
	} else if ip := r.Header.Get(headerXRealIP); ip != "" {
		ra = ip
	} else {
		ra, _, _ = net.SplitHostPort(ra)
	}

	return ra
}
