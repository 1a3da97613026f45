package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ProjectGhostOS/aware/lib/aware"
)

func TestStaticPolicyDefaults(t *testing.T) {
	p := NewStaticPolicy()
	attr := &aware.AttributionSource{UID: 1500, Package: "somePackage"}

	// Unknown packages target the current platform.
	assert.False(t, p.IsTargetSDKLessThan("somePackage", aware.TargetVersionT, 1500))

	// Discovery permissions are granted by default.
	assert.NoError(t, p.EnforceLocationPermission("somePackage", "someFeature", 1500))
	assert.NoError(t, p.EnforceNearbyDevicesPermission(attr, false, ""))

	// Privileged capabilities are denied by default.
	assert.False(t, p.IsSystem("somePackage", 1500))
	assert.Error(t, p.EnforceNetworkStackPermission(1500))
}

func TestStaticPolicyTargetSDK(t *testing.T) {
	p := NewStaticPolicy()
	p.SetTargetSDK("legacyPackage", aware.TargetVersionT-1)
	p.SetTargetSDK("currentPackage", aware.TargetVersionT)

	assert.True(t, p.IsTargetSDKLessThan("legacyPackage", aware.TargetVersionT, 1500))
	assert.False(t, p.IsTargetSDKLessThan("currentPackage", aware.TargetVersionT, 1500))
}

func TestStaticPolicyDenyLists(t *testing.T) {
	p := NewStaticPolicy()
	p.DenyLocation(1500)
	p.DenyNearbyDevices(1501)

	assert.Error(t, p.EnforceLocationPermission("somePackage", "someFeature", 1500))
	assert.NoError(t, p.EnforceLocationPermission("somePackage", "someFeature", 1501))

	assert.Error(t, p.EnforceNearbyDevicesPermission(&aware.AttributionSource{UID: 1501}, false, ""))
	assert.NoError(t, p.EnforceNearbyDevicesPermission(&aware.AttributionSource{UID: 1500}, false, ""))
}

func TestStaticPolicyGrantLists(t *testing.T) {
	p := NewStaticPolicy()
	p.AddSystemUID(1000)
	p.AddNetworkStackUID(1073)

	assert.True(t, p.IsSystem("android", 1000))
	assert.False(t, p.IsSystem("android", 1001))

	assert.NoError(t, p.EnforceNetworkStackPermission(1073))
	assert.Error(t, p.EnforceNetworkStackPermission(1074))
}

func TestStaticPolicyNilAttribution(t *testing.T) {
	p := NewStaticPolicy()
	assert.Error(t, p.EnforceNearbyDevicesPermission(nil, false, ""))
}
