package mqtt

import (
	"regexp"
	"strings"
)

// DefaultPrefix is the topic root the bridge serves under.
const DefaultPrefix = "serial_device"

const (
	cmdConnect         = "connect"
	cmdClose           = "close"
	cmdSend            = "send"
	cmdRefreshComports = "refresh_comports"
)

// requestPattern matches per-port client requests, <port>/<command>. The
// command alternation keeps the bridge from reacting to its own status and
// received publishes, which arrive on the same wildcard subscription.
var requestPattern = regexp.MustCompile(`^(?P<port>[^/]+)/(?P<command>connect|close|send)$`)

// parseRequest decodes an incoming topic under prefix. ok is false for
// topics the bridge does not serve, including the ones it publishes itself.
func parseRequest(prefix, topic string) (port, command string, ok bool) {
	rest, found := strings.CutPrefix(topic, prefix+"/")
	if !found {
		return "", "", false
	}
	if rest == cmdRefreshComports {
		return "", cmdRefreshComports, true
	}
	m := requestPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// PortSegment converts a port name into its topic segment. Device paths
// carry slashes, which MQTT topic segments cannot.
func PortSegment(name string) string {
	name = strings.TrimPrefix(name, "/dev/")
	return strings.ReplaceAll(name, "/", "_")
}

func comportsTopic(prefix string) string {
	return prefix + "/comports"
}

func statusTopic(prefix, segment string) string {
	return prefix + "/" + segment + "/status"
}

func receivedTopic(prefix, segment string) string {
	return prefix + "/" + segment + "/received"
}

func requestWildcard(prefix string) string {
	return prefix + "/#"
}
