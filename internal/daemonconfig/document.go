// Package daemonconfig builds the container engine's daemon.json.
//
// The document carries a fixed operational policy: json-file logging with
// rotation, a single default address pool, overlay2 storage, the userland
// proxy disabled and live-restore disabled. It is always written whole; there
// is no merging with an existing file.
package daemonconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/netip"
)

// Fixed policy values.
const (
	LogDriver     = "json-file"
	LogMaxSize    = "10m"
	LogMaxFile    = "3"
	StorageDriver = "overlay2"
)

// Document is the daemon configuration file. Field order is the serialized key order.
type Document struct {
	LogDriver           string        `json:"log-driver"`
	LogOpts             LogOpts       `json:"log-opts"`
	DefaultAddressPools []AddressPool `json:"default-address-pools"`
	UserlandProxy       bool          `json:"userland-proxy"`
	LiveRestore         bool          `json:"live-restore"`
	StorageDriver       string        `json:"storage-driver"`
}

// LogOpts configures log rotation for the json-file driver.
type LogOpts struct {
	MaxSize string `json:"max-size"`
	MaxFile string `json:"max-file"`
}

// AddressPool is a range carved into per-network subnets of Size bits.
type AddressPool struct {
	Base string `json:"base"`
	Size int    `json:"size"`
}

// New returns the policy document with a single address pool.
func New(poolBase string, poolSize int) *Document {
	return &Document{
		LogDriver: LogDriver,
		LogOpts: LogOpts{
			MaxSize: LogMaxSize,
			MaxFile: LogMaxFile,
		},
		DefaultAddressPools: []AddressPool{{Base: poolBase, Size: poolSize}},
		UserlandProxy:       false,
		LiveRestore:         false,
		StorageDriver:       StorageDriver,
	}
}

// Validate checks that every address pool is a valid prefix that can be split
// into subnets of the requested size.
func (d *Document) Validate() error {
	if len(d.DefaultAddressPools) == 0 {
		return fmt.Errorf("at least one address pool is required")
	}
	for i, pool := range d.DefaultAddressPools {
		prefix, err := netip.ParsePrefix(pool.Base)
		if err != nil {
			return fmt.Errorf("address pool %d: %w", i, err)
		}
		if prefix.Masked() != prefix {
			return fmt.Errorf("address pool %d: %s has host bits set", i, pool.Base)
		}
		if pool.Size < prefix.Bits() || pool.Size > prefix.Addr().BitLen() {
			return fmt.Errorf("address pool %d: size /%d does not fit in %s", i, pool.Size, pool.Base)
		}
	}
	return nil
}

// Marshal renders the document as indented JSON with a trailing newline.
// The output depends only on the document's values, so rewriting an unchanged
// document yields identical bytes.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode daemon config: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a daemon configuration document, rejecting unknown keys.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode daemon config: %w", err)
	}
	return &d, nil
}
