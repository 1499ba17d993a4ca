package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ClientFactory builds HTTP clients for talking to the Content API.
type ClientFactory struct {
	proxyURL      string
	testTransport http.RoundTripper // For testing only
}

// NewClientFactory creates a factory. An empty proxyURL means direct connections.
// Supported proxy schemes are http, https, socks5 and socks5h.
func NewClientFactory(proxyURL string) (*ClientFactory, error) {
	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		if _, err := newTransportWithProxy(proxyURL); err != nil {
			return nil, err
		}
	}
	return &ClientFactory{proxyURL: proxyURL}, nil
}

// NewClientFactoryForTest creates a factory whose clients use rt.
func NewClientFactoryForTest(rt http.RoundTripper) *ClientFactory {
	return &ClientFactory{testTransport: rt}
}

// ProxyURL returns the configured proxy, or "" for direct connections.
func (f *ClientFactory) ProxyURL() string {
	return f.proxyURL
}

// NewHTTPClient creates an http.Client bounded by timeout. A non-positive
// timeout leaves the client unbounded.
func (f *ClientFactory) NewHTTPClient(timeout time.Duration) *http.Client {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}

	if f.testTransport != nil {
		client.Transport = f.testTransport
		return client
	}

	if f.proxyURL != "" {
		// Validated in NewClientFactory.
		transport, _ := newTransportWithProxy(f.proxyURL)
		client.Transport = transport
	}
	return client
}

// newTransportWithProxy creates an http.Transport routed through proxyURL.
// SOCKS proxies go through golang.org/x/net/proxy; HTTP proxies use http.ProxyURL.
func newTransportWithProxy(proxyURL string) (*http.Transport, error) {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", proxyURL)
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("create socks5 dialer: %w", err)
		}

		transport := &http.Transport{}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		return transport, nil
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(parsed)}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}
}
