package fetch

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/rs/dnscache"
)

const (
	defaultDialTimeout         = 30 * time.Second //nolint:mnd
	defaultKeepAlive           = 30 * time.Second //nolint:mnd
	defaultIdleConnTimeout     = 90 * time.Second //nolint:mnd
	defaultTLSHandshakeTimeout = 10 * time.Second //nolint:mnd
	defaultMaxIdleConns        = 10
)

var resolver = &dnscache.Resolver{} //nolint:gochecknoglobals

// NewTransport returns an http.Transport that resolves hosts through a
// shared DNS cache and leaves response decoding to NewDecompressor. Timeouts
// can be tuned with FETCH_DIAL_TIMEOUT, FETCH_IDLE_CONN_TIMEOUT and
// FETCH_TLS_HANDSHAKE_TIMEOUT.
func NewTransport() *http.Transport {
	dialTimeout := envutil.Duration("FETCH_DIAL_TIMEOUT").ValueOrElse(defaultDialTimeout)
	idleConnTimeout := envutil.Duration("FETCH_IDLE_CONN_TIMEOUT").ValueOrElse(defaultIdleConnTimeout)
	tlsHandshakeTimeout := envutil.Duration("FETCH_TLS_HANDSHAKE_TIMEOUT").ValueOrElse(defaultTLSHandshakeTimeout)

	trans := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		DisableCompression:  true,
	}

	useDNSCacheDialer(trans, dialTimeout, defaultKeepAlive)

	return trans
}

// useDNSCacheDialer dials every address the cache returns for a host until
// one connects.
func useDNSCacheDialer(trans *http.Transport, timeout, keepAlive time.Duration) {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: keepAlive,
	}

	trans.DialContext = func(ctx context.Context, network string, addr string) (conn net.Conn, err error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}

		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}

		for _, ip := range ips {
			conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				break
			}
		}

		return conn, err
	}
}
