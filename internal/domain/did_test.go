package domain

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyDID_RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	did := NewKeyDID(pub)
	assert.True(t, strings.HasPrefix(did.String(), "did:key:z6Mk"))
	assert.True(t, did.Valid())

	decoded, err := did.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, pub, decoded)
}

func TestDID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		did  DID
	}{
		{name: "empty", did: ""},
		{name: "pkh method", did: "did:pkh:eip155:1:0xabc"},
		{name: "bad base58", did: "did:key:z0OIl"},
		{name: "wrong length", did: "did:key:z6Mk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.did.Valid())
		})
	}
}
