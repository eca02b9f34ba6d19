// Package host runs commands and writes files on the machine being provisioned.
//
// A [Runner] executes a [Command] either on the local machine ([Local]) or on a
// remote machine over SSH ([Remote]). Commands marked Sudo are elevated per
// invocation; the tool itself never runs as root. File writes go through the
// runner as well (an elevated install(1) reading from stdin) so the same phases
// work unchanged for both targets.
package host
