package cryptography

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

/*
 * a thin wrapper around chacha20poly1305 and argon2. Used to keep the
 * configuration, the log and the history database unreadable at rest, the
 * hidden messages themselves are never encrypted.
 */

// chacha20poly1305 encryption+authentication, the nonce is prepended
func Encrypt(data, key []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize, NonceSize+len(data)+TagSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, data, nil), nil
}

func Decrypt(data, key []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key")
	}
	if len(data) < NonceSize+TagSize {
		return nil, fmt.Errorf("invalid length of data")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
}

// generate a random amount of bytes
func GenRandom(size uint) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("GenRandom: invalid size of random data")
	}
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// calculate the hash of data
func Hash(data []byte) string {
	if data == nil {
		return ""
	}
	hash := sha512.Sum512(data)
	return hex.EncodeToString(hash[:])
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt(password string) ([]byte, []byte, error) {
	salt, pass, found := strings.Cut(password, ":")
	if !found {
		return nil, nil, fmt.Errorf("no salt supplied")
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, nil, err
	}
	return []byte(pass), saltBytes, nil
}

// derive encryption key from password. used for local configuration storage
func DeriveKey(password, saltBytes []byte) []byte {
	threads := uint8(runtime.NumCPU())
	return argon2.IDKey(password, saltBytes, KdfTime, KdfMemory, threads, SymKeySize)
}
