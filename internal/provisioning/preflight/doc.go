// Package preflight implements the guards that run before anything on the
// target is changed: the privilege check and the platform check.
package preflight
