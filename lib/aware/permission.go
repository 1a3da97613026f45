package aware

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// TargetVersionT is the declared-target platform version at which discovery
// operations switch from the legacy location predicate to the narrower
// nearby-devices predicate.
const TargetVersionT = 33

// AttributionSource identifies the caller of an operation: the numeric UID
// and PID of the calling process plus its declared package and feature ids.
type AttributionSource struct {
	UID     int32
	PID     int32
	Package string
	Feature string
}

// PermissionChecker is the external permission authority. It answers whether
// an identity holds a capability and whether its declared target version is
// below a given platform version. Implementations are supplied by the host.
type PermissionChecker interface {
	// IsTargetSDKLessThan reports whether pkg (running as uid) declares a
	// target platform version strictly below version.
	IsTargetSDKLessThan(pkg string, version, uid int32) bool

	// EnforceLocationPermission is the legacy discovery predicate, applied
	// to callers targeting a platform version below TargetVersionT.
	EnforceLocationPermission(pkg, feature string, uid int32) error

	// EnforceNearbyDevicesPermission is the current discovery predicate.
	// checkForLocation is set when the operation requests ranging, since
	// enforcement differs when ranging is involved.
	EnforceNearbyDevicesPermission(attribution *AttributionSource, checkForLocation bool, message string) error

	// IsSystem reports whether pkg (running as uid) is a system caller.
	IsSystem(pkg string, uid int32) bool

	// EnforceNetworkStackPermission checks the fixed network-stack
	// capability, independent of any client session.
	EnforceNetworkStackPermission(uid int32) error
}

// enforceDiscoveryPermission applies the version-gated discovery predicate:
// legacy location permission for callers below TargetVersionT, the
// nearby-devices permission otherwise. Denial aborts the operation before
// anything reaches the engine.
func (s *Service) enforceDiscoveryPermission(caller AttributionSource, rangingRequested bool, message string) error {
	if s.perm.IsTargetSDKLessThan(caller.Package, TargetVersionT, caller.UID) {
		if err := s.perm.EnforceLocationPermission(caller.Package, caller.Feature, caller.UID); err != nil {
			log.WithFields(logger.Fields{
				"at":  "aware.enforceDiscoveryPermission",
				"uid": caller.UID,
				"pkg": caller.Package,
			}).Warn("location_permission_denied")
			return oops.Wrapf(ErrAuthorization, "location permission denied for uid %d", caller.UID)
		}
		return nil
	}

	if err := s.perm.EnforceNearbyDevicesPermission(&caller, rangingRequested, message); err != nil {
		log.WithFields(logger.Fields{
			"at":      "aware.enforceDiscoveryPermission",
			"uid":     caller.UID,
			"pkg":     caller.Package,
			"ranging": rangingRequested,
		}).Warn("nearby_devices_permission_denied")
		return oops.Wrapf(ErrAuthorization, "nearby devices permission denied for uid %d", caller.UID)
	}
	return nil
}
