// Package sss implements Shamir's Secret Sharing over byte vectors with a
// built-in HMAC-SHA256 digest check on recovery. It is the polynomial layer
// underneath the group/member share structure in package slip39; it knows
// nothing about mnemonics, wordlists, or group thresholds.
package sss

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"github.com/slip39kit/slip39/internal/gf256"
)

// Reserved x-coordinates. The digest point and the secret point can never be
// produced by a legitimate group or member index, which live in [0, 15].
const (
	DigestIndex = 254
	SecretIndex = 255

	digestTagLen = 4
)

// Point is one (x, y) sample of a degree-(T-1) polynomial over GF(256),
// evaluated component-wise across a byte vector.
type Point struct {
	X byte
	Y []byte
}

// Interpolate evaluates the unique polynomial passing through points at x,
// one GF(256) Lagrange interpolation per byte position. All points must
// share a value length and a distinct X; an empty points slice is an error.
func Interpolate(x byte, points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrInvalidPoints
	}

	length := len(points[0].Y)
	seen := make(map[byte]bool, len(points))
	for _, p := range points {
		if len(p.Y) != length {
			return nil, ErrInvalidPoints
		}
		if seen[p.X] {
			return nil, ErrInvalidPoints
		}
		seen[p.X] = true
	}

	// Precompute the Lagrange basis weight for each point once; it is the
	// same across every byte position since it depends only on the X values.
	// The formula is exact even when x coincides with one of the nodes: that
	// node's weight comes out to 1 and every other node's comes out to 0.
	weights := make([]byte, len(points))
	for i, pi := range points {
		weight := byte(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			top := gf256.Sub(x, pj.X)
			bottom := gf256.Sub(pi.X, pj.X)
			factor, err := gf256.Div(top, bottom)
			if err != nil {
				return nil, err
			}
			weight = gf256.Mul(weight, factor)
		}
		weights[i] = weight
	}

	result := make([]byte, length)
	for i := 0; i < length; i++ {
		var acc byte
		for j, p := range points {
			acc = gf256.Add(acc, gf256.Mul(p.Y[i], weights[j]))
		}
		result[i] = acc
	}
	return result, nil
}

// digest computes HMAC-SHA256(R, S)[0..4] || R, the fixed point stored at x=254.
func digest(randomizer, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomizer)
	mac.Write(secret)
	sum := mac.Sum(nil)

	d := make([]byte, digestTagLen+len(randomizer))
	copy(d[:digestTagLen], sum[:digestTagLen])
	copy(d[digestTagLen:], randomizer)
	return d
}

// Split divides secret into n shares recoverable from any t of them.
// The secret must be at least 16 bytes and of even length. Share x-coordinates
// run [0, n). When t == 1 every share is the secret itself (no randomization,
// no digest point — there is nothing to validate against).
func Split(rnd io.Reader, secret []byte, t, n int) ([]Point, error) {
	if t < 1 || t > n {
		return nil, ErrInvalidThreshold
	}
	if n < 1 || n > 16 {
		return nil, ErrInvalidThreshold
	}
	if len(secret) < 16 || len(secret)%2 != 0 {
		return nil, ErrInvalidSecretLength
	}

	shares := make([]Point, n)
	if t == 1 {
		for i := 0; i < n; i++ {
			y := make([]byte, len(secret))
			copy(y, secret)
			shares[i] = Point{X: byte(i), Y: y}
		}
		return shares, nil
	}

	randomizerLen := len(secret) - digestTagLen
	randomizer := make([]byte, randomizerLen)
	if _, err := io.ReadFull(rnd, randomizer); err != nil {
		return nil, err
	}
	d := digest(randomizer, secret)

	// T-2 random fixed points at x = 0..T-3, plus the reserved digest and
	// secret points, give T points total to interpolate the rest from.
	base := make([]Point, 0, t)
	for i := 0; i < t-2; i++ {
		y := make([]byte, len(secret))
		if _, err := io.ReadFull(rnd, y); err != nil {
			return nil, err
		}
		base = append(base, Point{X: byte(i), Y: y})
	}
	base = append(base, Point{X: DigestIndex, Y: d})
	base = append(base, Point{X: SecretIndex, Y: secret})

	for i := 0; i < n; i++ {
		if i < t-2 {
			y := make([]byte, len(secret))
			copy(y, base[i].Y)
			shares[i] = Point{X: byte(i), Y: y}
			continue
		}
		y, err := Interpolate(byte(i), base)
		if err != nil {
			return nil, err
		}
		shares[i] = Point{X: byte(i), Y: y}
	}

	return shares, nil
}

// Recover reconstructs the secret from t points. When t == 1 the first
// point's value is returned directly with no digest check. Otherwise the
// secret and digest points are recomputed by interpolation and the digest
// is verified; a mismatch returns ErrDigestMismatch.
func Recover(t int, points []Point) ([]byte, error) {
	if len(points) < t {
		return nil, ErrNotEnoughPoints
	}
	if t == 1 {
		out := make([]byte, len(points[0].Y))
		copy(out, points[0].Y)
		return out, nil
	}

	pts := points[:t]

	secret, err := Interpolate(SecretIndex, pts)
	if err != nil {
		return nil, err
	}
	d, err := Interpolate(DigestIndex, pts)
	if err != nil {
		return nil, err
	}
	if len(d) < digestTagLen {
		return nil, ErrDigestMismatch
	}

	tag := d[:digestTagLen]
	randomizer := d[digestTagLen:]

	want := digest(randomizer, secret)[:digestTagLen]
	if !hmac.Equal(tag, want) {
		return nil, ErrDigestMismatch
	}

	return secret, nil
}
