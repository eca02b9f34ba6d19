package trustkey

import (
	"bytes"
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKey returns a freshly generated public key in binary and armored form
// together with its fingerprint.
func testKey(t *testing.T) (binary, armored []byte, fingerprint string) {
	t.Helper()

	entity, err := openpgp.NewEntity("Release Signing", "test", "release@example.com", nil)
	require.NoError(t, err)

	var bin bytes.Buffer
	require.NoError(t, entity.Serialize(&bin))

	var arm bytes.Buffer
	w, err := armor.Encode(&arm, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	_, err = w.Write(bin.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return bin.Bytes(), arm.Bytes(), strings.ToUpper(hex.EncodeToString(entity.PrimaryKey.Fingerprint))
}

func TestDearmor(t *testing.T) {
	t.Parallel()
	binary, armored, _ := testKey(t)

	got, err := Dearmor(armored)
	require.NoError(t, err)
	assert.Equal(t, binary, got)

	got, err = Dearmor(binary)
	require.NoError(t, err)
	assert.Equal(t, binary, got, "binary input passes through")
}

func TestDearmor_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Dearmor(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is empty")

	_, err = Dearmor([]byte("-----BEGIN PGP PUBLIC KEY BLOCK-----"))
	require.Error(t, err)
}

func TestDearmor_WrongBlockType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, "PGP SIGNATURE", nil)
	require.NoError(t, err)
	_, _ = w.Write([]byte{0x01, 0x02})
	require.NoError(t, w.Close())

	_, err = Dearmor(buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected armor block")
}

func TestVerifyFingerprint(t *testing.T) {
	t.Parallel()
	binary, _, fp := testKey(t)

	require.NoError(t, VerifyFingerprint(binary, fp))

	err := VerifyFingerprint(binary, "9DC858229FC7DD38854AE2D88D81803C0EBFCD88")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not include")

	_, err = Fingerprints([]byte("not a keyring"))
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	t.Parallel()
	_, armored, _ := testKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/linux/ubuntu/gpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(armored)
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.Client(), srv.URL+"/linux/ubuntu/gpg")
	require.NoError(t, err)
	assert.Equal(t, armored, got)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_TooLarge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxKeySize+10))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetch_Cancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, srv.Client(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
