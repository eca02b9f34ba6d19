// Package provisioning provides the shared types and the runner for the
// installation procedure.
//
// # Subpackages
//
//   - preflight/: privilege and platform guards
//   - packages/: apt index refresh, prerequisite, legacy and runtime packages
//   - repository/: signing key and apt source registration
//   - daemon/: group membership, service enablement, daemon.json, restart
//   - verify/: smoke test and version report
//   - procedure/: the ordered list of phases
//
// # Core Types
//
// Context carries configuration, state, the host runner, the observer and the
// confirmation prompt. Phase defines a step with Name() and Provision().
// State accumulates facts discovered along the way (OS release, architecture,
// written documents, report).
package provisioning
