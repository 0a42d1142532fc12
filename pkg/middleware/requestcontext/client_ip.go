package requestcontext

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type clientIPKey struct{}

type WithClientIPConfig struct {
	// TrustedHeader carries the client IP when set, e.g. X-Real-IP or CF-Connecting-IP.
	TrustedHeader string `mapstructure:"trusted_header"`

	// TrustedProxies are the CIDR ranges of every proxy in front of the server.
	// The client IP is the last X-Forwarded-For entry outside them.
	TrustedProxies []string `mapstructure:"trusted_proxies"`

	// RejectMalformed answers 403 when X-Forwarded-For is set but no trusted proxy is configured.
	RejectMalformed bool `mapstructure:"reject_malformed"`
}

// GetClientIP returns the client IP of ctx, or empty string outside a request.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

func WithClientIP(config WithClientIPConfig) (Option, error) {
	proxies := make([]*net.IPNet, 0, len(config.TrustedProxies))
	for _, cidr := range config.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid trusted proxy range %q", cidr)
		}
		proxies = append(proxies, ipNet)
	}
	trusted := func(ip net.IP) bool {
		for _, ipNet := range proxies {
			if ipNet.Contains(ip) {
				return true
			}
		}
		return false
	}

	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		ip, err := clientIP(c.Context(), c.IPs(), config, trusted, len(proxies) > 0)
		if err != nil {
			logger.WarnContext(ctx, "Rejected request with unverifiable client IP",
				slogx.String("event", "requestcontext/ip_spoofing_detected"),
				slogx.String("remoteIP", remoteIP(c.Context())),
				slogx.Any("ips", c.IPs()),
			)
			return nil, errors.WithStack(err)
		}
		return context.WithValue(ctx, clientIPKey{}, ip), nil
	}, nil
}

func clientIP(rc *fasthttp.RequestCtx, forwarded []string, config WithClientIPConfig, trusted func(net.IP) bool, hasProxies bool) (string, error) {
	if config.TrustedHeader != "" {
		if header := string(rc.Request.Header.Peek(config.TrustedHeader)); net.ParseIP(header) != nil {
			return header, nil
		}
	}
	if len(forwarded) == 0 {
		return remoteIP(rc), nil
	}
	if hasProxies {
		for i := len(forwarded) - 1; i >= 0; i-- {
			if ip := net.ParseIP(forwarded[i]); ip != nil && !trusted(ip) {
				return forwarded[i], nil
			}
		}
		return forwarded[0], nil
	}
	if config.RejectMalformed {
		return "", rejectError{status: fiber.StatusForbidden, message: "not allowed to access"}
	}
	return forwarded[0], nil
}

func remoteIP(rc *fasthttp.RequestCtx) string {
	return rc.RemoteIP().String()
}
