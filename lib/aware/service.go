package aware

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"golang.org/x/time/rate"
)

// ServiceConfig holds the host-provided construction parameters of the gate.
type ServiceConfig struct {
	// RTTSupported reports whether the platform supports ranging. Publish
	// and subscribe requests that ask for ranging are rejected without it.
	RTTSupported bool

	// MaxClients caps the number of concurrently connected clients.
	MaxClients int

	// ConnectRateLimit and ConnectRateBurst guard Connect against abuse.
	// A zero ConnectRateLimit disables the guard.
	ConnectRateLimit float64
	ConnectRateBurst int
}

// DefaultServiceConfig returns a ServiceConfig with sensible defaults.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		RTTSupported: true,
		MaxClients:   128,
	}
}

// Service is the gate in front of the discovery engine. Every public
// operation resolves and authorizes the client id, validates any untrusted
// payload, runs the applicable permission check, and only then forwards to
// the engine. Results and asynchronous events flow back through the
// callbacks registered with the engine, unchanged.
type Service struct {
	engine   StateManager
	perm     PermissionChecker
	registry *ClientRegistry

	caps *Capabilities

	rttSupported   bool
	maxClients     int
	connectLimiter *rate.Limiter
}

// NewService constructs the gate around the given engine and permission
// authority. The engine capability snapshot is obtained here, once, and
// seeds all validator limits for the life of the service.
func NewService(engine StateManager, perm PermissionChecker, config *ServiceConfig) (*Service, error) {
	if config == nil {
		config = DefaultServiceConfig()
	}

	caps := engine.GetCapabilities()
	if caps == nil {
		return nil, oops.Errorf("engine reported no capabilities")
	}

	s := &Service{
		engine:       engine,
		perm:         perm,
		registry:     NewClientRegistry(),
		caps:         caps,
		rttSupported: config.RTTSupported,
		maxClients:   config.MaxClients,
	}
	if config.ConnectRateLimit > 0 {
		s.connectLimiter = rate.NewLimiter(rate.Limit(config.ConnectRateLimit), max(config.ConnectRateBurst, 1))
	}

	log.WithFields(logger.Fields{
		"at":           "aware.NewService",
		"maxClients":   s.maxClients,
		"rttSupported": s.rttSupported,
	}).Info("aware_service_created")

	return s, nil
}

// Registry exposes the client registry for introspection.
func (s *Service) Registry() *ClientRegistry {
	return s.registry
}

// Characteristics returns the public limits derived from the cached engine
// capability snapshot.
func (s *Service) Characteristics() *Characteristics {
	return s.caps.ToCharacteristics()
}

// Connect allocates a new client session bound to the caller's UID and to
// the lifetime of the given channel, registers the caller's event callback
// with the engine, and returns the new client id. A nil config is replaced
// by the default ConfigRequest.
//
// Connect is the only operation that does not authorize an existing id; it
// is subject only to the resource guards.
func (s *Service) Connect(channel Channel, caller AttributionSource, callback EventCallback, config *ConfigRequest, notifyOnIdentityChange bool) (int32, error) {
	if s.connectLimiter != nil && !s.connectLimiter.Allow() {
		return 0, oops.Wrapf(ErrResourceExhausted, "connect rate limit exceeded")
	}
	if s.registry.Size() >= s.maxClients {
		return 0, oops.Wrapf(ErrResourceExhausted,
			"client limit %d reached", s.maxClients)
	}

	if config == nil {
		config = DefaultConfigRequest()
	}

	clientID, err := s.registry.Allocate(caller.UID, channel, func(id int32) {
		log.WithFields(logger.Fields{
			"at":       "aware.Service",
			"clientId": id,
		}).Debug("channel_died_disconnecting_client")
		if err := s.engine.Disconnect(id); err != nil {
			log.WithError(err).Warn("engine disconnect after channel death failed")
		}
	})
	if err != nil {
		return 0, err
	}

	if err := s.engine.Connect(clientID, caller.UID, caller.PID, caller.Package,
		caller.Feature, callback, config, notifyOnIdentityChange); err != nil {
		s.registry.Release(clientID)
		return 0, err
	}

	log.WithFields(logger.Fields{
		"at":       "aware.Service.Connect",
		"clientId": clientID,
		"uid":      caller.UID,
		"pkg":      caller.Package,
	}).Debug("client_connected")

	return clientID, nil
}

// Disconnect authorizes the caller against the client id, releases the
// session and its channel watch, and forwards the disconnect to the engine.
// The release is idempotent, but the authorization stage still rejects ids
// that are unknown or already cleaned up.
func (s *Service) Disconnect(clientID, callerUID int32) error {
	if err := s.registry.Authorize(clientID, callerUID); err != nil {
		return err
	}
	s.registry.Release(clientID)
	return s.engine.Disconnect(clientID)
}

// Publish authorizes, validates the publish configuration, applies the
// version-gated discovery permission (ranging-aware), and forwards.
func (s *Service) Publish(caller AttributionSource, clientID int32, config *PublishConfig, callback SessionCallback) error {
	if err := s.registry.Authorize(clientID, caller.UID); err != nil {
		return err
	}
	if err := validatePublishConfig(config, s.caps, s.rttSupported); err != nil {
		return err
	}
	if err := s.enforceDiscoveryPermission(caller, config.RangingEnabled,
		"Publish requires nearby devices permission"); err != nil {
		return err
	}
	return s.engine.Publish(clientID, config, callback)
}

// Subscribe authorizes, validates the subscribe configuration, applies the
// version-gated discovery permission (ranging-aware), and forwards.
func (s *Service) Subscribe(caller AttributionSource, clientID int32, config *SubscribeConfig, callback SessionCallback) error {
	if err := s.registry.Authorize(clientID, caller.UID); err != nil {
		return err
	}
	if err := validateSubscribeConfig(config, s.caps, s.rttSupported); err != nil {
		return err
	}
	if err := s.enforceDiscoveryPermission(caller, config.MaxDistanceMm > 0,
		"Subscribe requires nearby devices permission"); err != nil {
		return err
	}
	return s.engine.Subscribe(clientID, config, callback)
}

// UpdatePublish authorizes, re-validates the configuration, and forwards.
// The discovery permission is not re-checked on update.
func (s *Service) UpdatePublish(callerUID, clientID, sessionID int32, config *PublishConfig) error {
	if err := s.registry.Authorize(clientID, callerUID); err != nil {
		return err
	}
	if err := validatePublishConfig(config, s.caps, s.rttSupported); err != nil {
		return err
	}
	return s.engine.UpdatePublish(clientID, sessionID, config)
}

// UpdateSubscribe authorizes, re-validates the configuration, and forwards.
// The discovery permission is not re-checked on update.
func (s *Service) UpdateSubscribe(callerUID, clientID, sessionID int32, config *SubscribeConfig) error {
	if err := s.registry.Authorize(clientID, callerUID); err != nil {
		return err
	}
	if err := validateSubscribeConfig(config, s.caps, s.rttSupported); err != nil {
		return err
	}
	return s.engine.UpdateSubscribe(clientID, sessionID, config)
}

// TerminateSession authorizes and forwards.
func (s *Service) TerminateSession(callerUID, clientID, sessionID int32) error {
	if err := s.registry.Authorize(clientID, callerUID); err != nil {
		return err
	}
	return s.engine.TerminateSession(clientID, sessionID)
}

// SendMessage authorizes, bounds the message length by the engine limit, and
// forwards.
func (s *Service) SendMessage(callerUID, clientID, sessionID, peerID int32, message []byte, messageID, retryCount int32) error {
	if err := s.registry.Authorize(clientID, callerUID); err != nil {
		return err
	}
	if len(message) > s.caps.MaxServiceSpecificInfoLen {
		return oops.Wrapf(ErrValidation,
			"message length %d exceeds limit %d", len(message), s.caps.MaxServiceSpecificInfoLen)
	}
	return s.engine.SendMessage(clientID, sessionID, peerID, message, messageID, retryCount)
}

// RequestMacAddresses resolves peer ids to MAC addresses. It requires the
// fixed network-stack capability and is independent of any client session.
func (s *Service) RequestMacAddresses(callerUID, uid int32, peerIDs []int32, callback MacAddressCallback) error {
	if err := s.perm.EnforceNetworkStackPermission(callerUID); err != nil {
		log.WithFields(logger.Fields{
			"at":  "aware.Service.RequestMacAddresses",
			"uid": callerUID,
		}).Warn("network_stack_permission_denied")
		return oops.Wrapf(ErrAuthorization, "network stack permission denied for uid %d", callerUID)
	}
	return s.engine.RequestMacAddresses(uid, peerIDs, callback)
}

// IsUsageEnabled reports whether discovery usage is currently enabled.
// Pass-through query.
func (s *Service) IsUsageEnabled() bool {
	return s.engine.IsUsageEnabled()
}

// GetAvailableAwareResources reports the engine's currently available
// resources. Pass-through query.
func (s *Service) GetAvailableAwareResources() *AwareResources {
	return s.engine.GetAvailableAwareResources()
}

// EnableInstantCommunicationMode toggles instant communication mode. Only a
// system caller may change it; the query path is open.
func (s *Service) EnableInstantCommunicationMode(callerUID int32, pkg string, enable bool) error {
	if !s.perm.IsSystem(pkg, callerUID) {
		log.WithFields(logger.Fields{
			"at":  "aware.Service.EnableInstantCommunicationMode",
			"uid": callerUID,
			"pkg": pkg,
		}).Warn("instant_mode_toggle_from_non_system_caller")
		return oops.Wrapf(ErrAuthorization, "uid %d is not a system caller", callerUID)
	}
	s.engine.EnableInstantCommunicationMode(enable)
	return nil
}

// IsInstantCommunicationModeEnabled reports the instant communication mode
// state. Pass-through query.
func (s *Service) IsInstantCommunicationModeEnabled() bool {
	return s.engine.IsInstantCommunicationModeEnabled()
}
