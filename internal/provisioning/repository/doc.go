// Package repository registers the upstream apt repository: it installs the
// signing key as a binary keyring and writes a signed-by source entry for the
// target's architecture and release codename.
package repository
