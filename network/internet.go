package network

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/cockroachdb/errors"
)

const (
	// DefaultInternetHost is the Cloudflare DNS resolver.
	DefaultInternetHost = "1.1.1.1"
	// DefaultInternetPort is DNS over TCP.
	DefaultInternetPort = 53
	DefaultDialTimeout  = 5 * time.Second
	// DefaultInternetTTL is how long a successful probe is remembered.
	DefaultInternetTTL = 30 * time.Second
)

var reachable = mustMemoizer(cache.New(func(ctx context.Context, _ cache.Owner, args cache.Args, _ cache.Kwargs) (bool, error) {
	host, port, timeout := args[0].(string), args[1].(int), args[2].(time.Duration)
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false, errors.Wrapf(err, "network: dial %s:%d", host, port)
	}
	conn.Close()
	return true, nil
}, cache.WithMaxSize(64), cache.WithTTL(DefaultInternetTTL)))

// IsReachable reports whether a TCP connection to host:port opens within timeout. Success is
// remembered for DefaultInternetTTL; a failed probe returns false with the dial error and is
// retried on the next call.
func IsReachable(ctx context.Context, host string, port int, timeout time.Duration) (bool, error) {
	return reachable.InvokeContext(ctx, cache.Unbound, cache.Args{host, port, timeout}, nil)
}

// CheckInternet reports whether the internet probe endpoint is reachable. Errors are logged.
func (c *Checker) CheckInternet(ctx context.Context) bool {
	ok, err := IsReachable(ctx, c.host, c.port, c.timeout)
	if err != nil {
		c.logger.Error("%s", err)
		return false
	}
	return ok
}
