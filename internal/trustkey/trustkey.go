// Package trustkey downloads an apt repository signing key and converts it to
// the binary keyring form apt expects for signed-by sources.
package trustkey

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// maxKeySize bounds the download; real signing keys are a few KiB.
const maxKeySize = 1 << 20

const armorHeader = "-----BEGIN PGP"

// Fetch downloads the key at url. The request is bound to ctx.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build key request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download key from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download key from %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read key from %s: %w", url, err)
	}
	if len(data) > maxKeySize {
		return nil, fmt.Errorf("key at %s exceeds %d bytes", url, maxKeySize)
	}
	return data, nil
}

// Dearmor converts an ASCII-armored public key block to its binary packets.
// Input that is already binary is returned unchanged.
func Dearmor(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(armorHeader)) {
		if len(data) == 0 {
			return nil, fmt.Errorf("key is empty")
		}
		return data, nil
	}

	block, err := armor.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode armored key: %w", err)
	}
	if block.Type != openpgp.PublicKeyType {
		return nil, fmt.Errorf("unexpected armor block %q, want %q", block.Type, openpgp.PublicKeyType)
	}

	binary, err := io.ReadAll(block.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read armored key: %w", err)
	}
	return binary, nil
}

// Fingerprints parses a binary keyring and returns the upper-case hex
// fingerprint of every primary key in it.
func Fingerprints(keyring []byte) ([]string, error) {
	entities, err := openpgp.ReadKeyRing(bytes.NewReader(keyring))
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyring: %w", err)
	}

	fps := make([]string, 0, len(entities))
	for _, e := range entities {
		fps = append(fps, strings.ToUpper(hex.EncodeToString(e.PrimaryKey.Fingerprint)))
	}
	return fps, nil
}

// VerifyFingerprint checks that keyring contains a primary key with the
// expected fingerprint. want must already be normalized (upper-case hex).
func VerifyFingerprint(keyring []byte, want string) error {
	fps, err := Fingerprints(keyring)
	if err != nil {
		return err
	}
	for _, fp := range fps {
		if fp == want {
			return nil
		}
	}
	return fmt.Errorf("keyring fingerprints %v do not include %s", fps, want)
}
