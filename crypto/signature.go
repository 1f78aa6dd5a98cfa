package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
)

// Sign signs data with k and returns a hex-encoded signature.
func Sign(k SigningKey, data []byte) string {
	sig := ed25519.Sign(ed25519.PrivateKey(k), data)
	return hex.EncodeToString(sig)
}

// Verify checks a hex-encoded signature against data using the hex-encoded
// public key pubKeyHex. This is the exact shape the chain needs: inputs
// carry their pubKey as hex already, so callers never construct a
// VerifyingKey by hand.
func Verify(pubKeyHex string, data []byte, sigHex string) error {
	pub, err := VerifyingKeyFromHex(pubKeyHex)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return fmt.Errorf("invalid signature hex: %w", err)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), data, sig) {
		return errors.New("signature verification failed")
	}
	return nil
}
