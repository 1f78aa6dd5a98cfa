package wallet

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadKeyRoundTrip(t *testing.T) {
	w, err := Generate()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "keystore.json")
	if err := SaveKey(path, "correct horse battery staple", w.PrivKey()); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadKey(path, "correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Public().Hex() != w.PubKeyHex() {
		t.Fatal("round-tripped key does not match original")
	}
}

func TestLoadKeyWrongPasswordFails(t *testing.T) {
	w, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "keystore.json")
	if err := SaveKey(path, "right-password", w.PrivKey()); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKey(path, "wrong-password"); err == nil {
		t.Fatal("expected wrong password to fail decryption")
	}
}
