// Package slip39 orchestrates the group/member share hierarchy on top of
// package sss, package feistel, and package mnemonic: Generate turns a
// master secret into a set of mnemonics, Combine reverses the process.
package slip39

import (
	"io"

	"github.com/slip39kit/slip39/internal/feistel"
)

// GroupSpec is one group's (threshold, count) pair, T_i and N_i in the spec.
type GroupSpec struct {
	Threshold int
	Count     int
}

// feistelParams builds the Feistel round parameters shared by Generate and Combine.
func feistelParams(id uint16, ext bool, e uint8, normalizedPassphrase []byte) feistel.Params {
	return feistel.Params{
		ID:                id,
		Extendable:        ext,
		IterationExponent: e,
		Passphrase:        normalizedPassphrase,
	}
}

// randomID draws a uniformly random 15-bit identifier.
func randomID(rnd io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(rnd, b[:]); err != nil {
		return 0, err
	}
	id := uint16(b[0])<<8 | uint16(b[1])
	return id & 0x7FFF, nil
}
