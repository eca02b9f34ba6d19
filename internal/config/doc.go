// Package config defines the settings of a provisioning run.
//
// Every value has a default matching the supported platform (Docker CE from
// download.docker.com on Ubuntu 24.04), so a run without any configuration
// behaves exactly like the built-in procedure. Defaults can be overridden by a
// YAML file, then by an env file, then by HOSTPREP_* process environment
// variables, in that order of increasing precedence.
package config
