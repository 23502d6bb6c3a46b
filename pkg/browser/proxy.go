package browser

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// proxyEnvVars are checked in priority order before any port probing.
var proxyEnvVars = []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy", "ALL_PROXY", "all_proxy"}

// proxyPort associates a local listen port of a common proxy tool with
// the proxy URL to use when the port is open.
type proxyPort struct {
	port int
	url  string
}

// commonProxyPorts covers the default ports of v2ray and clash plus the
// generic SOCKS5 port. HTTP entries are preferred over SOCKS5 entries
// regardless of position.
var commonProxyPorts = []proxyPort{
	{10809, "http://127.0.0.1:10809"},
	{7890, "http://127.0.0.1:7890"},
	{10808, "socks5://127.0.0.1:10808"},
	{7891, "socks5://127.0.0.1:7891"},
	{1080, "socks5://127.0.0.1:1080"},
}

const probeTimeout = 500 * time.Millisecond

// DetectProxy resolves an upstream proxy: environment variables first,
// then a probe of common local proxy ports. Among open ports any
// HTTP-scheme proxy wins over any SOCKS5 one, since browsers handle HTTP
// proxies more reliably. Returns "" when nothing is found; never errors.
func DetectProxy() string {
	for _, name := range proxyEnvVars {
		if proxy := os.Getenv(name); proxy != "" {
			return proxy
		}
	}

	var firstSocks string
	for _, candidate := range commonProxyPorts {
		if !isPortOpen(candidate.port) {
			continue
		}
		if strings.HasPrefix(candidate.url, "http://") {
			return candidate.url
		}
		if firstSocks == "" {
			firstSocks = candidate.url
		}
	}
	return firstSocks
}

func isPortOpen(port int) bool {
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", address, probeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
