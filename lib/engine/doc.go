// Package engine provides in-process implementations of the external
// dependencies of the aware gate: an in-memory StateManager for development
// and testing, and a static PermissionChecker policy. Production hosts
// replace both with bindings to the real discovery engine and platform
// permission authority.
package engine
