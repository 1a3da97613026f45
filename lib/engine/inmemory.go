package engine

import (
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/ProjectGhostOS/aware/lib/aware"
)

var log = logger.GetGoI2PLogger()

// DefaultCapabilities are the limits the in-memory engine reports.
func DefaultCapabilities() *aware.Capabilities {
	return &aware.Capabilities{
		MaxConcurrentClusters:             1,
		MaxPublishes:                      8,
		MaxSubscribes:                     8,
		MaxServiceNameLen:                 255,
		MaxMatchFilterLen:                 255,
		MaxTotalMatchFilterLen:            255,
		MaxServiceSpecificInfoLen:         255,
		MaxExtendedServiceSpecificInfoLen: 255,
		MaxNdiInterfaces:                  1,
		MaxNdpSessions:                    1,
		MaxAppInfoLen:                     255,
		MaxQueuedTransmitMessages:         16,
		SupportedCipherSuites:             aware.CipherSuiteNCSSK256,
		InstantCommunicationModeSupported: true,
	}
}

// client is the engine-side record of a connected gate client.
type client struct {
	uid      int32
	pkg      string
	callback aware.EventCallback
	sessions map[int32]aware.SessionCallback
}

// InMemory is a development StateManager. It accounts connected clients and
// their discovery sessions and acknowledges requests through the registered
// callbacks, but performs no over-the-air discovery.
type InMemory struct {
	mu            sync.Mutex
	caps          *aware.Capabilities
	clients       map[int32]*client
	nextSessionID int32
	usageEnabled  bool
	instantMode   bool
}

// NewInMemory creates an in-memory engine reporting the given capabilities,
// or DefaultCapabilities when nil.
func NewInMemory(caps *aware.Capabilities) *InMemory {
	if caps == nil {
		caps = DefaultCapabilities()
	}
	return &InMemory{
		caps:          caps,
		clients:       make(map[int32]*client),
		nextSessionID: 1,
		usageEnabled:  true,
	}
}

// GetCapabilities implements aware.StateManager.
func (e *InMemory) GetCapabilities() *aware.Capabilities {
	return e.caps
}

// Connect implements aware.StateManager.
func (e *InMemory) Connect(clientID, uid, pid int32, pkg, feature string, callback aware.EventCallback, config *aware.ConfigRequest, notifyOnIdentityChange bool) error {
	e.mu.Lock()
	e.clients[clientID] = &client{
		uid:      uid,
		pkg:      pkg,
		callback: callback,
		sessions: make(map[int32]aware.SessionCallback),
	}
	e.mu.Unlock()

	log.WithFields(logger.Fields{
		"at":       "engine.InMemory.Connect",
		"clientId": clientID,
		"uid":      uid,
		"pkg":      pkg,
	}).Debug("engine_client_connected")

	if callback != nil {
		callback.OnConnectSuccess(clientID)
	}
	return nil
}

// Disconnect implements aware.StateManager. Unknown clients are a no-op, the
// gate may disconnect a client whose channel died before the engine saw it.
func (e *InMemory) Disconnect(clientID int32) error {
	e.mu.Lock()
	delete(e.clients, clientID)
	e.mu.Unlock()
	return nil
}

func (e *InMemory) startSession(clientID int32, callback aware.SessionCallback) error {
	e.mu.Lock()
	c, ok := e.clients[clientID]
	if !ok {
		e.mu.Unlock()
		return oops.Errorf("engine: unknown client %d", clientID)
	}
	sessionID := e.nextSessionID
	e.nextSessionID++
	c.sessions[sessionID] = callback
	e.mu.Unlock()

	if callback != nil {
		callback.OnSessionStarted(sessionID)
	}
	return nil
}

// Publish implements aware.StateManager.
func (e *InMemory) Publish(clientID int32, config *aware.PublishConfig, callback aware.SessionCallback) error {
	return e.startSession(clientID, callback)
}

// Subscribe implements aware.StateManager.
func (e *InMemory) Subscribe(clientID int32, config *aware.SubscribeConfig, callback aware.SessionCallback) error {
	return e.startSession(clientID, callback)
}

// UpdatePublish implements aware.StateManager.
func (e *InMemory) UpdatePublish(clientID, sessionID int32, config *aware.PublishConfig) error {
	return e.requireSession(clientID, sessionID)
}

// UpdateSubscribe implements aware.StateManager.
func (e *InMemory) UpdateSubscribe(clientID, sessionID int32, config *aware.SubscribeConfig) error {
	return e.requireSession(clientID, sessionID)
}

// TerminateSession implements aware.StateManager.
func (e *InMemory) TerminateSession(clientID, sessionID int32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.clients[clientID]; ok {
		delete(c.sessions, sessionID)
	}
	return nil
}

// SendMessage implements aware.StateManager. Messages are accounted but not
// delivered anywhere.
func (e *InMemory) SendMessage(clientID, sessionID, peerID int32, message []byte, messageID, retryCount int32) error {
	return e.requireSession(clientID, sessionID)
}

// RequestMacAddresses implements aware.StateManager. The development engine
// has no peers, so the callback always receives an empty mapping.
func (e *InMemory) RequestMacAddresses(uid int32, peerIDs []int32, callback aware.MacAddressCallback) error {
	if callback != nil {
		callback.OnMacAddresses(nil)
	}
	return nil
}

// IsUsageEnabled implements aware.StateManager.
func (e *InMemory) IsUsageEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.usageEnabled
}

// SetUsageEnabled flips the availability flag reported to callers.
func (e *InMemory) SetUsageEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.usageEnabled = enabled
}

// GetAvailableAwareResources implements aware.StateManager.
func (e *InMemory) GetAvailableAwareResources() *aware.AwareResources {
	e.mu.Lock()
	defer e.mu.Unlock()

	active := 0
	for _, c := range e.clients {
		active += len(c.sessions)
	}
	return &aware.AwareResources{
		AvailableDataPaths:         e.caps.MaxNdpSessions,
		AvailablePublishSessions:   max(e.caps.MaxPublishes-active, 0),
		AvailableSubscribeSessions: max(e.caps.MaxSubscribes-active, 0),
	}
}

// EnableInstantCommunicationMode implements aware.StateManager.
func (e *InMemory) EnableInstantCommunicationMode(enable bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instantMode = enable
}

// IsInstantCommunicationModeEnabled implements aware.StateManager.
func (e *InMemory) IsInstantCommunicationModeEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instantMode
}

// ClientCount reports the number of connected clients.
func (e *InMemory) ClientCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.clients)
}

func (e *InMemory) requireSession(clientID, sessionID int32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.clients[clientID]
	if !ok {
		return oops.Errorf("engine: unknown client %d", clientID)
	}
	if _, ok := c.sessions[sessionID]; !ok {
		return oops.Errorf("engine: client %d has no session %d", clientID, sessionID)
	}
	return nil
}
