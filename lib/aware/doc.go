// Package aware implements the access-control and input-validation gate that
// sits between untrusted inter-process callers and the Aware nearby-peer
// discovery engine.
//
// Every inbound operation passes through a three-stage pipeline before it is
// forwarded to the engine:
//   - Client registry: binds each client id to the UID that created it and to
//     the lifetime of the channel it was created over, and rejects operations
//     from callers that do not own the id they target.
//   - Payload validator: structurally checks publish/subscribe configurations
//     (service name, service-specific info, length-value match filters)
//     against the engine-reported capability limits.
//   - Permission check: selects the legacy location predicate or the current
//     nearby-devices predicate based on the caller's declared target SDK,
//     passing a ranging flag where the config requests it.
//
// Main components:
//   - Service: the public operation surface (Connect, Publish, Subscribe, ...)
//   - ClientRegistry: client id allocation, ownership checks, channel-death cleanup
//   - StateManager: interface to the discovery engine (external)
//   - PermissionChecker: interface to the platform permission authority (external)
package aware
