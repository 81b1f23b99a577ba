package domain

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// ed25519PubMulticodec is the varint-encoded multicodec prefix of an ed25519 public key
var ed25519PubMulticodec = []byte{0xed, 0x01}

// DID represents a Decentralized Identifier (W3C standard)
type DID string

// NewKeyDID creates a did:key identifier from an ed25519 public key
// Reference: https://w3c-ccg.github.io/did-method-key/
func NewKeyDID(pub ed25519.PublicKey) DID {
	buf := make([]byte, 0, len(ed25519PubMulticodec)+len(pub))
	buf = append(buf, ed25519PubMulticodec...)
	buf = append(buf, pub...)
	// "z" is the multibase prefix for base58btc
	return DID("did:key:z" + base58.Encode(buf))
}

// PublicKey extracts the ed25519 public key from a did:key identifier
func (d DID) PublicKey() (ed25519.PublicKey, error) {
	rest, ok := strings.CutPrefix(string(d), "did:key:z")
	if !ok {
		return nil, fmt.Errorf("unsupported DID %q", d)
	}

	raw, err := base58.Decode(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid base58 in DID: %w", err)
	}
	if len(raw) != len(ed25519PubMulticodec)+ed25519.PublicKeySize ||
		raw[0] != ed25519PubMulticodec[0] || raw[1] != ed25519PubMulticodec[1] {
		return nil, errors.New("DID is not an ed25519 key")
	}

	return ed25519.PublicKey(raw[len(ed25519PubMulticodec):]), nil
}

// Valid reports whether the DID is a well-formed ed25519 did:key
func (d DID) Valid() bool {
	_, err := d.PublicKey()
	return err == nil
}

// String returns the string representation of the DID
func (d DID) String() string {
	return string(d)
}
