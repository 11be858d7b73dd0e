// Package bundle implements the encrypted, checksummed, at-rest container
// for a SLIP-39 share set: the manifest plus mnemonics are age-encrypted
// under a password and wrapped with a SHA-256 checksum over the ciphertext,
// mirroring the reference application's wallet-backup envelope applied to a
// share set instead of a wallet.
package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/slip39kit/slip39/internal/sigilcrypto"
)

// Version is the current bundle format version.
const Version = 1

var (
	// ErrCorrupted indicates the bundle's checksum does not match its ciphertext.
	ErrCorrupted = errors.New("bundle corrupted - checksum mismatch")

	// ErrDecryptionFailed indicates the password was wrong or the ciphertext was tampered with.
	ErrDecryptionFailed = errors.New("bundle decryption failed")

	// ErrInvalidFormat indicates the bundle's structure could not be parsed.
	ErrInvalidFormat = errors.New("invalid bundle format")
)

// Manifest carries the group/threshold metadata needed to make sense of the
// mnemonics in a bundle without decrypting them.
type Manifest struct {
	CreatedAt         time.Time `json:"created_at"`
	GroupThreshold    int       `json:"group_threshold"`
	GroupCount        int       `json:"group_count"`
	ShareValueLen     int       `json:"share_value_len"`
	Identifier        uint16    `json:"identifier"`
	Extendable        bool      `json:"extendable"`
	IterationExponent int       `json:"iteration_exponent"`
}

// Bundle is the on-disk/on-wire envelope: a manifest plus an age-encrypted
// JSON array of mnemonic strings, checksummed for tamper detection.
type Bundle struct {
	Version         int      `json:"version"`
	Manifest        Manifest `json:"manifest"`
	EncryptedShares []byte   `json:"encrypted_shares"`
	Checksum        string   `json:"checksum"`
}

// Export JSON-marshals mnemonics, age-encrypts them under password, and
// wraps the result in a Bundle with a SHA-256 checksum over the ciphertext.
func Export(mnemonics []string, manifest Manifest, password string) (*Bundle, error) {
	payload, err := json.Marshal(mnemonics)
	if err != nil {
		return nil, fmt.Errorf("serializing share list: %w", err)
	}

	securePayload, err := sigilcrypto.SecureBytesFromSlice(payload)
	for i := range payload {
		payload[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("securing share list: %w", err)
	}
	defer securePayload.Destroy()

	encrypted, err := sigilcrypto.EncryptSecure(securePayload, password)
	if err != nil {
		return nil, fmt.Errorf("encrypting share list: %w", err)
	}

	return &Bundle{
		Version:         Version,
		Manifest:        manifest,
		EncryptedShares: encrypted,
		Checksum:        checksum(encrypted),
	}, nil
}

// Import verifies b's checksum, decrypts its payload under password, and
// returns the mnemonic list plus the manifest. The checksum is verified
// before decryption is attempted, per §8 of the domain-stack test suite.
func Import(b *Bundle, password string) ([]string, Manifest, error) {
	if err := b.Validate(); err != nil {
		return nil, Manifest{}, err
	}

	securePlaintext, err := sigilcrypto.DecryptSecure(b.EncryptedShares, password)
	if err != nil {
		return nil, Manifest{}, ErrDecryptionFailed
	}
	defer securePlaintext.Destroy()

	var mnemonics []string
	if err := json.Unmarshal(securePlaintext.Bytes(), &mnemonics); err != nil {
		return nil, Manifest{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return mnemonics, b.Manifest, nil
}

// Validate checks structural consistency and the checksum, without touching
// the ciphertext's contents.
func (b *Bundle) Validate() error {
	if b.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, b.Version)
	}
	if len(b.EncryptedShares) == 0 {
		return fmt.Errorf("%w: no encrypted shares", ErrInvalidFormat)
	}
	return verifyChecksum(b.EncryptedShares, b.Checksum)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func verifyChecksum(data []byte, expected string) error {
	if checksum(data) != expected {
		return ErrCorrupted
	}
	return nil
}
