package network

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	"github.com/KhanMaytok/reddit-karma-farming-bot/resilience"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// ErrNoPublicIP is returned when none of the ip services gave an answer.
var ErrNoPublicIP = errors.New("network: could not determine the public ip")

// DefaultPublicIPTTL is how long a checker remembers its public ip.
const DefaultPublicIPTTL = 10 * time.Minute

var (
	// DefaultIPServices return the caller address as plain text and are tried in order.
	DefaultIPServices = []string{"https://api.ipify.org", "http://ip.42.pl/raw"}
	// DefaultIPFallback returns a JSON document whose origin field holds the caller address.
	DefaultIPFallback = "http://httpbin.org/ip"
)

func mustMemoizer[R any](m *cache.Memoizer[R], err error) *cache.Memoizer[R] {
	if err != nil {
		panic(err)
	}
	return m
}

// publicIPs keeps one partition per Checker.
var publicIPs = mustMemoizer(cache.New(func(ctx context.Context, owner cache.Owner, _ cache.Args, _ cache.Kwargs) (string, error) {
	return owner.Identity().(*Checker).lookupPublicIP(ctx)
}, cache.WithMaxSize(1), cache.WithTTL(DefaultPublicIPTTL)))

// Checker answers connectivity questions about the host it runs on.
type Checker struct {
	client   *http.Client
	services []string
	fallback string
	host     string
	port     int
	timeout  time.Duration
	logger   logger.Logger
	breaker  resilience.CircuitBreakerConfig
	breakers map[string]*resilience.CircuitBreaker
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithHTTPClient sets the client used to query the ip services.
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) { c.client = client }
}

// WithIPServices replaces the plain text ip services.
func WithIPServices(urls ...string) CheckerOption {
	return func(c *Checker) { c.services = urls }
}

// WithIPFallback replaces the JSON ip service queried after the plain text ones.
// An empty url disables the fallback.
func WithIPFallback(url string) CheckerOption {
	return func(c *Checker) { c.fallback = url }
}

// WithInternetProbe sets the TCP endpoint dialed by CheckInternet.
func WithInternetProbe(host string, port int, timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.host = host
		c.port = port
		c.timeout = timeout
	}
}

// WithCircuitBreaker sets when an ip service that keeps failing is skipped.
func WithCircuitBreaker(config resilience.CircuitBreakerConfig) CheckerOption {
	return func(c *Checker) { c.breaker = config }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) CheckerOption {
	return func(c *Checker) { c.logger = log }
}

// NewChecker returns a Checker using the public services unless overridden.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: 10 * time.Second},
		services: DefaultIPServices,
		fallback: DefaultIPFallback,
		host:     DefaultInternetHost,
		port:     DefaultInternetPort,
		timeout:  DefaultDialTimeout,
		breaker:  resilience.DefaultCircuitBreakerConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breakers = make(map[string]*resilience.CircuitBreaker, len(c.services)+1)
	for _, url := range append([]string{c.fallback}, c.services...) {
		if url != "" {
			c.breakers[url] = resilience.NewCircuitBreaker(c.breaker)
		}
	}
	if c.logger == nil {
		c.logger = logger.NewConsoleLogger()
	}
	c.logger = c.logger.WithPrefix("[network]")
	return c
}

// PublicIP returns the external address of this host. The answer is remembered for
// DefaultPublicIPTTL per checker; failures are not remembered.
func (c *Checker) PublicIP(ctx context.Context) (string, error) {
	return publicIPs.InvokeContext(ctx, cache.BoundTo(c), nil, nil)
}

// ForgetPublicIP drops the remembered public ip of this checker.
func (c *Checker) ForgetPublicIP() {
	publicIPs.Clear(cache.BoundTo(c))
}

func (c *Checker) lookupPublicIP(ctx context.Context) (string, error) {
	var lastErr error
	for _, service := range c.services {
		body, err := c.get(ctx, service)
		if err != nil {
			c.logger.Debug("ip service %s failed: %s", service, err)
			lastErr = err
			continue
		}
		if ip := strings.TrimSpace(string(body)); ip != "" {
			return ip, nil
		}
	}
	if c.fallback != "" {
		body, err := c.get(ctx, c.fallback)
		if err == nil {
			origin := gjson.GetBytes(body, "origin").String()
			if ip := strings.TrimSpace(strings.Split(origin, ",")[0]); ip != "" {
				return ip, nil
			}
		} else {
			lastErr = err
		}
	}
	c.logger.Error("could not check external ip")
	if lastErr != nil {
		return "", errors.Mark(errors.Wrap(lastErr, "network: public ip"), ErrNoPublicIP)
	}
	return "", ErrNoPublicIP
}

// get fetches url through the circuit breaker of its service.
func (c *Checker) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.breakers[url].Execute(func() error {
		var err error
		body, err = c.fetch(ctx, url)
		return err
	})
	return body, err
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status code from %s: %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4096))
}
