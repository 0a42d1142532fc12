package requestcontext

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestClientIP(t *testing.T) {
	_, proxyRange, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	trusted := func(ip net.IP) bool { return proxyRange.Contains(ip) }

	type testCase struct {
		name       string
		header     string
		forwarded  []string
		config     WithClientIPConfig
		hasProxies bool
		expected   string
		rejected   bool
	}
	testCases := []testCase{
		{name: "direct", expected: "0.0.0.0"},
		{name: "trusted header", header: "203.0.113.7", config: WithClientIPConfig{TrustedHeader: "X-Real-IP"}, expected: "203.0.113.7"},
		{name: "invalid trusted header falls back", header: "nope", config: WithClientIPConfig{TrustedHeader: "X-Real-IP"}, expected: "0.0.0.0"},
		{name: "last untrusted hop", forwarded: []string{"198.51.100.1", "203.0.113.9", "10.0.0.2"}, hasProxies: true, expected: "203.0.113.9"},
		{name: "all hops trusted", forwarded: []string{"10.0.0.1", "10.0.0.2"}, hasProxies: true, expected: "10.0.0.1"},
		{name: "first hop without proxies", forwarded: []string{"198.51.100.1", "203.0.113.9"}, expected: "198.51.100.1"},
		{name: "reject malformed", forwarded: []string{"198.51.100.1"}, config: WithClientIPConfig{RejectMalformed: true}, rejected: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc := &fasthttp.RequestCtx{}
			if tc.header != "" {
				rc.Request.Header.Set("X-Real-IP", tc.header)
			}
			ip, err := clientIP(rc, tc.forwarded, tc.config, trusted, tc.hasProxies)
			if tc.rejected {
				var rErr rejectError
				require.ErrorAs(t, err, &rErr)
				assert.Equal(t, 403, rErr.status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ip)
		})
	}
}
