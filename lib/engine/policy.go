package engine

import (
	"sync"

	"github.com/samber/oops"

	"github.com/ProjectGhostOS/aware/lib/aware"
)

// StaticPolicy is a table-driven PermissionChecker for development and
// testing. Discovery permissions default to granted unless a UID has been
// explicitly denied; unknown packages are treated as targeting the current
// platform. The privileged capabilities (system caller, network stack) are
// grant-lists and default to denied.
type StaticPolicy struct {
	mu sync.Mutex

	targetSDK      map[string]int32
	deniedLocation map[int32]bool
	deniedNearby   map[int32]bool
	systemUIDs     map[int32]bool
	networkStack   map[int32]bool
}

// NewStaticPolicy creates a permissive policy.
func NewStaticPolicy() *StaticPolicy {
	return &StaticPolicy{
		targetSDK:      make(map[string]int32),
		deniedLocation: make(map[int32]bool),
		deniedNearby:   make(map[int32]bool),
		systemUIDs:     make(map[int32]bool),
		networkStack:   make(map[int32]bool),
	}
}

// SetTargetSDK declares the target platform version for a package.
func (p *StaticPolicy) SetTargetSDK(pkg string, version int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.targetSDK[pkg] = version
}

// DenyLocation marks a UID as lacking the legacy location permission.
func (p *StaticPolicy) DenyLocation(uid int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deniedLocation[uid] = true
}

// DenyNearbyDevices marks a UID as lacking the nearby-devices permission.
func (p *StaticPolicy) DenyNearbyDevices(uid int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deniedNearby[uid] = true
}

// AddSystemUID marks a UID as a system caller.
func (p *StaticPolicy) AddSystemUID(uid int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.systemUIDs[uid] = true
}

// AddNetworkStackUID grants a UID the network-stack capability.
func (p *StaticPolicy) AddNetworkStackUID(uid int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.networkStack[uid] = true
}

// IsTargetSDKLessThan implements aware.PermissionChecker.
func (p *StaticPolicy) IsTargetSDKLessThan(pkg string, version, uid int32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	declared, ok := p.targetSDK[pkg]
	if !ok {
		return false
	}
	return declared < version
}

// EnforceLocationPermission implements aware.PermissionChecker.
func (p *StaticPolicy) EnforceLocationPermission(pkg, feature string, uid int32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deniedLocation[uid] {
		return oops.Errorf("uid %d lacks location permission", uid)
	}
	return nil
}

// EnforceNearbyDevicesPermission implements aware.PermissionChecker.
func (p *StaticPolicy) EnforceNearbyDevicesPermission(attribution *aware.AttributionSource, checkForLocation bool, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if attribution == nil {
		return oops.Errorf("missing attribution source")
	}
	if p.deniedNearby[attribution.UID] {
		return oops.Errorf("uid %d lacks nearby devices permission", attribution.UID)
	}
	return nil
}

// IsSystem implements aware.PermissionChecker.
func (p *StaticPolicy) IsSystem(pkg string, uid int32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.systemUIDs[uid]
}

// EnforceNetworkStackPermission implements aware.PermissionChecker.
func (p *StaticPolicy) EnforceNetworkStackPermission(uid int32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.networkStack[uid] {
		return oops.Errorf("uid %d lacks network stack permission", uid)
	}
	return nil
}
