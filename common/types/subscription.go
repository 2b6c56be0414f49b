package types

import "strings"

// SubscriptionMode tells how new block headers can be observed on an RPC endpoint.
type SubscriptionMode int

const (
	// WebSocketMode endpoints support eth_subscribe.
	WebSocketMode SubscriptionMode = iota
	// IPCMode endpoints are local sockets and support eth_subscribe.
	IPCMode
	// HTTPPollingMode endpoints have to be polled.
	HTTPPollingMode
)

// GetSubscriptionMode returns mode based on RPC URL
func GetSubscriptionMode(rpcURL string) SubscriptionMode {
	switch {
	case strings.HasPrefix(rpcURL, "wss://"), strings.HasPrefix(rpcURL, "ws://"):
		return WebSocketMode
	case strings.HasSuffix(rpcURL, ".ipc"):
		return IPCMode
	default:
		return HTTPPollingMode
	}
}

// CanSubscribe reports whether the mode supports push subscriptions.
func (m SubscriptionMode) CanSubscribe() bool {
	return m == WebSocketMode || m == IPCMode
}

func (m SubscriptionMode) String() string {
	switch m {
	case WebSocketMode:
		return "WebSocket"
	case IPCMode:
		return "IPC"
	case HTTPPollingMode:
		return "HTTP"
	default:
		return "Unknown"
	}
}
