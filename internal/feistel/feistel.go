// Package feistel implements the four-round Feistel network that encrypts
// and decrypts the SLIP-39 master secret under a passphrase. The network
// shape mirrors a generic Feistel obfuscator: explicit half split, an
// indexed round-function dispatch, and a final half swap — but the round
// function itself is a key-stretching PBKDF2 derivation, not an ARX mix.
package feistel

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

const (
	rounds = 4

	baseIterations = 2500

	// saltPrefixID is prepended with the share identifier for non-extendable
	// backups; extendable backups use no salt prefix at all.
	saltPrefixID = "shamir"
)

// Params bundles everything the round function F(i, R) needs besides the
// round index and current half.
type Params struct {
	ID                 uint16 // share group identifier
	Extendable         bool
	IterationExponent  uint8
	Passphrase         []byte // NFKD-normalized, UTF-8 encoded
}

func (p Params) saltPrefix() []byte {
	if p.Extendable {
		return nil
	}
	prefix := make([]byte, len(saltPrefixID)+2)
	copy(prefix, saltPrefixID)
	binary.BigEndian.PutUint16(prefix[len(saltPrefixID):], p.ID)
	return prefix
}

func (p Params) iterations() int {
	return baseIterations << p.IterationExponent
}

// roundFunction computes F(i, R) = PBKDF2-HMAC-SHA256(key=[i]||passphrase,
// salt=saltPrefix||R, iters, dkLen=len(half)).
func roundFunction(p Params, i int, half []byte) []byte {
	key := make([]byte, 1+len(p.Passphrase))
	key[0] = byte(i)
	copy(key[1:], p.Passphrase)

	salt := make([]byte, 0, len(p.saltPrefix())+len(half))
	salt = append(salt, p.saltPrefix()...)
	salt = append(salt, half...)

	return pbkdf2.Key(key, salt, p.iterations(), len(half), sha256.New)
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Encrypt runs the plaintext through rounds [0,1,2,3]. len(plaintext) must
// be even; the two halves of the ciphertext are (R_4, L_4).
func Encrypt(p Params, plaintext []byte) []byte {
	return run(p, plaintext, []int{0, 1, 2, 3})
}

// Decrypt is Encrypt with the round order reversed: the network is its own
// inverse when the rounds are replayed [3,2,1,0].
func Decrypt(p Params, ciphertext []byte) []byte {
	return run(p, ciphertext, []int{3, 2, 1, 0})
}

func run(p Params, input []byte, order []int) []byte {
	half := len(input) / 2
	l := append([]byte(nil), input[:half]...)
	r := append([]byte(nil), input[half:]...)

	for _, i := range order {
		f := roundFunction(p, i, r)
		newR := make([]byte, half)
		xorBytes(newR, l, f)
		l, r = r, newR
	}

	out := make([]byte, len(input))
	copy(out[:half], r)
	copy(out[half:], l)
	return out
}
