package config

// AwareConfig holds the host-tunable parameters of the discovery gate.
type AwareConfig struct {
	// MaxClients caps concurrently connected clients.
	MaxClients int

	// RTTSupported reports platform ranging support; without it, publish
	// and subscribe requests that ask for ranging are rejected.
	RTTSupported bool

	// ConnectRateLimit is the sustained Connect calls per second allowed
	// before the gate rejects with a resource error. Zero disables the
	// guard. ConnectRateBurst is the permitted burst above the rate.
	ConnectRateLimit float64
	ConnectRateBurst int

	// VerboseLogging enables debug-level session lifecycle logging.
	VerboseLogging bool
}

// DefaultAwareConfig returns the gate defaults.
func DefaultAwareConfig() *AwareConfig {
	return &AwareConfig{
		MaxClients:       128,
		RTTSupported:     true,
		ConnectRateLimit: 0,
		ConnectRateBurst: 8,
		VerboseLogging:   false,
	}
}
