package uri

import "strconv"

// defaultPorts is the closed table of implicit ports,
// see https://url.spec.whatwg.org/#default-port.
var defaultPorts = map[string]int{
	"ftp":    21,
	"gopher": 70,
	"http":   80,
	"https":  443,
	"ws":     80,
	"wss":    443,
}

// DefaultPort returns the implicit port of the protocol.
func DefaultPort(proto string) (int, bool) {
	p, ok := defaultPorts[proto]
	return p, ok
}

// normalizePort drops the port equal to the default port of the protocol or to zero.
func normalizePort(proto, port string) string {
	if port == "" {
		return ""
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return port
	}
	if p, ok := defaultPorts[proto]; n == 0 || ok && p == n {
		return ""
	}
	return port
}
