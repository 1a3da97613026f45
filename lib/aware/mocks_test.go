package aware

import "sync"

// testCapabilities returns the limits used across the gate tests.
func testCapabilities() *Capabilities {
	return &Capabilities{
		MaxConcurrentClusters:             1,
		MaxPublishes:                      2,
		MaxSubscribes:                     2,
		MaxServiceNameLen:                 255,
		MaxMatchFilterLen:                 255,
		MaxTotalMatchFilterLen:            255,
		MaxServiceSpecificInfoLen:         255,
		MaxExtendedServiceSpecificInfoLen: 255,
		MaxNdiInterfaces:                  1,
		MaxNdpSessions:                    1,
		MaxAppInfoLen:                     255,
		MaxQueuedTransmitMessages:         6,
		SupportedCipherSuites:             CipherSuiteNCSSK256,
		InstantCommunicationModeSupported: false,
	}
}

// engineCall records one forwarded engine invocation.
type engineCall struct {
	op        string
	clientID  int32
	sessionID int32
	peerID    int32
	message   []byte
	enable    bool
}

// mockEngine records every call the gate forwards. The zero value reports
// testCapabilities.
type mockEngine struct {
	mu    sync.Mutex
	caps  *Capabilities
	calls []engineCall

	usageEnabled bool
	instantMode  bool
	resources    *AwareResources
	connectErr   error
}

func newMockEngine() *mockEngine {
	return &mockEngine{caps: testCapabilities(), usageEnabled: true}
}

func (m *mockEngine) record(c engineCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// callsFor returns the recorded invocations of one operation, in order.
func (m *mockEngine) callsFor(op string) []engineCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []engineCall
	for _, c := range m.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockEngine) GetCapabilities() *Capabilities { return m.caps }

func (m *mockEngine) Connect(clientID, uid, pid int32, pkg, feature string, callback EventCallback, config *ConfigRequest, notifyOnIdentityChange bool) error {
	m.record(engineCall{op: "connect", clientID: clientID})
	return m.connectErr
}

func (m *mockEngine) Disconnect(clientID int32) error {
	m.record(engineCall{op: "disconnect", clientID: clientID})
	return nil
}

func (m *mockEngine) Publish(clientID int32, config *PublishConfig, callback SessionCallback) error {
	m.record(engineCall{op: "publish", clientID: clientID})
	return nil
}

func (m *mockEngine) Subscribe(clientID int32, config *SubscribeConfig, callback SessionCallback) error {
	m.record(engineCall{op: "subscribe", clientID: clientID})
	return nil
}

func (m *mockEngine) UpdatePublish(clientID, sessionID int32, config *PublishConfig) error {
	m.record(engineCall{op: "updatePublish", clientID: clientID, sessionID: sessionID})
	return nil
}

func (m *mockEngine) UpdateSubscribe(clientID, sessionID int32, config *SubscribeConfig) error {
	m.record(engineCall{op: "updateSubscribe", clientID: clientID, sessionID: sessionID})
	return nil
}

func (m *mockEngine) TerminateSession(clientID, sessionID int32) error {
	m.record(engineCall{op: "terminateSession", clientID: clientID, sessionID: sessionID})
	return nil
}

func (m *mockEngine) SendMessage(clientID, sessionID, peerID int32, message []byte, messageID, retryCount int32) error {
	m.record(engineCall{op: "sendMessage", clientID: clientID, sessionID: sessionID, peerID: peerID, message: message})
	return nil
}

func (m *mockEngine) RequestMacAddresses(uid int32, peerIDs []int32, callback MacAddressCallback) error {
	m.record(engineCall{op: "requestMacAddresses", clientID: uid})
	return nil
}

func (m *mockEngine) IsUsageEnabled() bool {
	m.record(engineCall{op: "isUsageEnabled"})
	return m.usageEnabled
}

func (m *mockEngine) GetAvailableAwareResources() *AwareResources {
	m.record(engineCall{op: "getAvailableAwareResources"})
	return m.resources
}

func (m *mockEngine) EnableInstantCommunicationMode(enable bool) {
	m.record(engineCall{op: "enableInstantCommunicationMode", enable: enable})
	m.mu.Lock()
	m.instantMode = enable
	m.mu.Unlock()
}

func (m *mockEngine) IsInstantCommunicationModeEnabled() bool {
	m.record(engineCall{op: "isInstantCommunicationModeEnabled"})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instantMode
}

// mockPermissions is a configurable PermissionChecker. The zero value grants
// everything except the privileged capabilities, and treats every package as
// targeting the current platform.
type mockPermissions struct {
	mu sync.Mutex

	targetSDKBelow bool
	locationErr    error
	nearbyErr      error
	system         bool
	networkErr     error

	locationChecks int
	nearbyChecks   []bool // checkForLocation argument per call
}

func (m *mockPermissions) IsTargetSDKLessThan(pkg string, version, uid int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targetSDKBelow
}

func (m *mockPermissions) EnforceLocationPermission(pkg, feature string, uid int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locationChecks++
	return m.locationErr
}

func (m *mockPermissions) EnforceNearbyDevicesPermission(attribution *AttributionSource, checkForLocation bool, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nearbyChecks = append(m.nearbyChecks, checkForLocation)
	return m.nearbyErr
}

func (m *mockPermissions) IsSystem(pkg string, uid int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}

func (m *mockPermissions) EnforceNetworkStackPermission(uid int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.networkErr
}

// noopEventCallback satisfies EventCallback for tests.
type noopEventCallback struct{}

func (noopEventCallback) OnConnectSuccess(clientID int32) {}
func (noopEventCallback) OnConnectFail(reason int32)      {}

// noopSessionCallback satisfies SessionCallback for tests.
type noopSessionCallback struct{}

func (noopSessionCallback) OnSessionStarted(sessionID int32) {}
func (noopSessionCallback) OnSessionConfigFail(reason int32) {}

// recordingMacCallback captures the mappings delivered to it.
type recordingMacCallback struct {
	mu       sync.Mutex
	received [][]MacAddrMapping
}

func (r *recordingMacCallback) OnMacAddresses(mappings []MacAddrMapping) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, mappings)
}
