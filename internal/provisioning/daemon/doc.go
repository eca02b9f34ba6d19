// Package daemon configures the installed container engine: group
// membership for the invoking user, service enablement, the daemon.json
// policy document and the restart that applies it.
package daemon
