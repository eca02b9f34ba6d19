// Package packages implements the apt steps of the procedure: index refresh,
// prerequisite installation, best-effort removal of conflicting legacy
// packages, and installation of the runtime packages.
package packages
