package daemonconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expected = `{
  "log-driver": "json-file",
  "log-opts": {
    "max-size": "10m",
    "max-file": "3"
  },
  "default-address-pools": [
    {
      "base": "172.17.0.0/16",
      "size": 24
    }
  ],
  "userland-proxy": false,
  "live-restore": false,
  "storage-driver": "overlay2"
}
`

func TestMarshal_FixedPolicy(t *testing.T) {
	t.Parallel()

	data, err := New("172.17.0.0/16", 24).Marshal()

	require.NoError(t, err)
	assert.Equal(t, expected, string(data))
}

func TestMarshal_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := New("172.17.0.0/16", 24).Marshal()
	require.NoError(t, err)
	second, err := New("172.17.0.0/16", 24).Marshal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshal_PolicyKeys(t *testing.T) {
	t.Parallel()

	data, err := New("10.10.0.0/16", 24).Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Len(t, raw, 6)
	assert.Equal(t, "json-file", raw["log-driver"])
	assert.Equal(t, map[string]any{"max-size": "10m", "max-file": "3"}, raw["log-opts"])
	assert.Equal(t, "overlay2", raw["storage-driver"])
	assert.Equal(t, false, raw["userland-proxy"])
	assert.Equal(t, false, raw["live-restore"])
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(expected))

	require.NoError(t, err)
	assert.Equal(t, New("172.17.0.0/16", 24), doc)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"log-driver":"json-file","debug":true}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode daemon config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     *Document
		wantErr string
	}{
		{"valid", New("172.17.0.0/16", 24), ""},
		{"ipv6", New("fd00:dead:beef::/48", 64), ""},
		{"size equals prefix", New("10.0.0.0/24", 24), ""},
		{"not a prefix", New("172.17.0.1", 24), "address pool 0"},
		{"host bits", New("172.17.0.1/16", 24), "host bits set"},
		{"size too small", New("172.17.0.0/16", 8), "does not fit"},
		{"size too large", New("172.17.0.0/16", 33), "does not fit"},
		{"no pools", &Document{}, "at least one address pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.doc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
