package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SigningKey is an Ed25519 private key, kept only by the transaction's
// sender (the wallet). The chain core never holds one.
type SigningKey []byte

// VerifyingKey is an Ed25519 public key. Hex-encoded, it is also the value
// stored in every Output.PubKey — on this chain the public key itself is
// the recipient's address.
type VerifyingKey []byte

// GenerateKeyPair creates a new Ed25519 key pair.
func GenerateKeyPair() (SigningKey, VerifyingKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return SigningKey(priv), VerifyingKey(pub), nil
}

// Public derives the verifying key that corresponds to k.
func (k SigningKey) Public() VerifyingKey {
	return VerifyingKey(ed25519.PrivateKey(k).Public().(ed25519.PublicKey))
}

// Hex returns the hex-encoded private key, for keystore storage only.
func (k SigningKey) Hex() string { return hex.EncodeToString(k) }

// Hex returns the hex-encoded public key, the form used everywhere a
// pubKey field appears on the wire.
func (k VerifyingKey) Hex() string { return hex.EncodeToString(k) }

// SigningKeyFromHex decodes a hex-encoded Ed25519 private key.
func SigningKeyFromHex(s string) (SigningKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(b))
	}
	return SigningKey(b), nil
}

// VerifyingKeyFromHex decodes a hex-encoded Ed25519 public key. This is the
// function the verifier uses on an Output.PubKey it has no other reason to
// trust — malformed hex is a wallet-side bug, not a core concern, so the
// caller is expected to collapse the error to a BadSignature rejection.
func VerifyingKeyFromHex(s string) (VerifyingKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return VerifyingKey(b), nil
}
