// Package share defines the parsed share value object: the header fields
// carried by every SLIP-39 mnemonic plus the share's byte value, with the
// field-range and cross-field validation a single share can check on its own.
package share

import (
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// Share holds one decoded or about-to-be-encoded mnemonic's fields.
type Share struct {
	ID                  uint16 // 15 bits
	Extendable          bool
	IterationExponent    uint8 // 4 bits
	GroupIndex           uint8 // 4 bits, 0-based
	GroupThreshold       uint8 // actual GT, 1..16
	GroupCount           uint8 // actual G, 1..16
	MemberIndex          uint8 // 4 bits, 0-based
	MemberThreshold      uint8 // actual T, 1..16
	Value                []byte
}

// Validate checks field ranges and the cross-field consistency a single
// share can establish without seeing the rest of its share set.
func (s Share) Validate() error {
	if s.ID > 0x7FFF {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "id exceeds 15 bits"})
	}
	if s.IterationExponent > 15 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "iteration exponent exceeds 4 bits"})
	}
	if s.GroupThreshold < 1 || s.GroupThreshold > 16 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "group threshold out of range"})
	}
	if s.GroupCount < 1 || s.GroupCount > 16 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "group count out of range"})
	}
	if s.GroupThreshold > s.GroupCount {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "group threshold exceeds group count"})
	}
	if int(s.GroupIndex) >= int(s.GroupCount) {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "group index out of range"})
	}
	if s.MemberThreshold < 1 || s.MemberThreshold > 16 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "member threshold out of range"})
	}
	if s.MemberIndex > 15 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "member index exceeds 4 bits"})
	}
	if len(s.Value) < 16 {
		return slip39err.WithDetails(slip39err.ErrInvalidShare, map[string]string{"reason": "share value shorter than 16 bytes"})
	}
	return nil
}
