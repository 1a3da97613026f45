package aware

// Supported data-path cipher suites, reported by the engine as a bitmask in
// Capabilities.SupportedCipherSuites.
const (
	CipherSuiteNCSSK128 uint32 = 1 << 0
	CipherSuiteNCSSK256 uint32 = 1 << 1
	CipherSuiteNCSPK128 uint32 = 1 << 2
	CipherSuiteNCSPK256 uint32 = 1 << 3
)

// ConfigRequest carries cluster-formation preferences supplied on Connect.
// A nil ConfigRequest on Connect is replaced by DefaultConfigRequest.
type ConfigRequest struct {
	MasterPreference uint8
	ClusterLow       uint16
	ClusterHigh      uint16
}

// DefaultConfigRequest returns the configuration used when a caller connects
// without one.
func DefaultConfigRequest() *ConfigRequest {
	return &ConfigRequest{
		MasterPreference: 0,
		ClusterLow:       0x0000,
		ClusterHigh:      0xffff,
	}
}

// SecurityConfig describes the data-path security requested by a discovery
// session. CipherSuite must be one of the suites the engine reports support
// for.
type SecurityConfig struct {
	CipherSuite   uint32
	PskPassphrase string
	PMK           []byte
}

// PublishConfig is the untrusted configuration of a publish discovery
// session. It is request-scoped: validated, forwarded, and discarded.
type PublishConfig struct {
	ServiceName         []byte
	ServiceSpecificInfo []byte
	MatchFilter         []byte
	RangingEnabled      bool
	SecurityConfig      *SecurityConfig
}

// SubscribeConfig is the untrusted configuration of a subscribe discovery
// session. A MaxDistanceMm greater than zero requests ranging.
type SubscribeConfig struct {
	ServiceName         []byte
	ServiceSpecificInfo []byte
	MatchFilter         []byte
	MaxDistanceMm       int
	SecurityConfig      *SecurityConfig
}

// AwareResources reports the engine's currently available discovery
// resources. Pass-through result type.
type AwareResources struct {
	AvailableDataPaths         int
	AvailablePublishSessions   int
	AvailableSubscribeSessions int
}

// MacAddrMapping pairs a discovered peer id with its MAC address.
type MacAddrMapping struct {
	PeerID int32
	Mac    []byte
}

// EventCallback receives asynchronous per-client engine events. The gate
// registers it with the engine on Connect and never interposes on delivery.
type EventCallback interface {
	OnConnectSuccess(clientID int32)
	OnConnectFail(reason int32)
}

// SessionCallback receives asynchronous per-discovery-session engine events.
type SessionCallback interface {
	OnSessionStarted(sessionID int32)
	OnSessionConfigFail(reason int32)
}

// MacAddressCallback receives the result of a RequestMacAddresses call.
type MacAddressCallback interface {
	OnMacAddresses(mappings []MacAddrMapping)
}

// StateManager is the discovery engine behind the gate. It accepts requests
// that have already been authorized and validated, keyed by client id, and
// delivers results asynchronously through the callbacks registered with it.
// Engine-side failures propagate unchanged; they are outside the gate's
// error taxonomy.
type StateManager interface {
	// GetCapabilities reports the engine limits. Called once at service
	// construction; the snapshot is immutable afterwards.
	GetCapabilities() *Capabilities

	Connect(clientID, uid, pid int32, pkg, feature string, callback EventCallback, config *ConfigRequest, notifyOnIdentityChange bool) error
	Disconnect(clientID int32) error
	Publish(clientID int32, config *PublishConfig, callback SessionCallback) error
	Subscribe(clientID int32, config *SubscribeConfig, callback SessionCallback) error
	UpdatePublish(clientID, sessionID int32, config *PublishConfig) error
	UpdateSubscribe(clientID, sessionID int32, config *SubscribeConfig) error
	TerminateSession(clientID, sessionID int32) error
	SendMessage(clientID, sessionID, peerID int32, message []byte, messageID, retryCount int32) error
	RequestMacAddresses(uid int32, peerIDs []int32, callback MacAddressCallback) error

	IsUsageEnabled() bool
	GetAvailableAwareResources() *AwareResources
	EnableInstantCommunicationMode(enable bool)
	IsInstantCommunicationModeEnabled() bool
}
