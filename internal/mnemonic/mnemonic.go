// Package mnemonic converts between a share's bit-packed header/value/
// checksum layout and its word-sequence representation.
package mnemonic

import (
	"strings"

	"github.com/slip39kit/slip39/internal/rs1024"
	shr "github.com/slip39kit/slip39/internal/share"
	"github.com/slip39kit/slip39/internal/wordlist"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

const (
	headerBits   = 40
	checksumBits = 30
	wordBits     = 10

	// minWords is reached when |MS| = 16: content = 40 + 128 + 30 = 198 bits,
	// W = ceil(198/10) = 20.
	minWords = 20
)

func customization(ext bool) string {
	if ext {
		return rs1024.CustomizationExtendable
	}
	return rs1024.CustomizationStandard
}

// Encode packs s into its word sequence, including a freshly computed RS1024 checksum.
func Encode(s shr.Share) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	content := headerBits + 8*len(s.Value) + checksumBits
	total := ((content + wordBits - 1) / wordBits) * wordBits
	padding := total - content

	w := &bitWriter{}
	w.writeBits(uint64(s.ID), 15)
	writeBool(w, s.Extendable)
	w.writeBits(uint64(s.IterationExponent), 4)
	w.writeBits(uint64(s.GroupIndex), 4)
	w.writeBits(uint64(s.GroupThreshold-1), 4)
	w.writeBits(uint64(s.GroupCount-1), 4)
	w.writeBits(uint64(s.MemberIndex), 4)
	w.writeBits(uint64(s.MemberThreshold-1), 4)
	w.writeBits(0, padding)
	for _, b := range s.Value {
		w.writeBits(uint64(b), 8)
	}

	wordCount := total / wordBits
	dataWords := make([]uint16, wordCount-3)
	r := &bitReader{buf: w.buf}
	for i := range dataWords {
		dataWords[i] = uint16(r.readBits(wordBits))
	}

	checksum := rs1024.Generate(customization(s.Extendable), dataWords)

	indices := make([]int, wordCount)
	for i, v := range dataWords {
		indices[i] = int(v)
	}
	indices[wordCount-3] = int(checksum[0])
	indices[wordCount-2] = int(checksum[1])
	indices[wordCount-1] = int(checksum[2])

	return wordlist.IndicesToWords(indices)
}

func writeBool(w *bitWriter, b bool) {
	if b {
		w.writeBits(1, 1)
	} else {
		w.writeBits(0, 1)
	}
}

// Decode parses a mnemonic (words separated by arbitrary whitespace) back into a Share.
func Decode(mnemonic string) (shr.Share, error) {
	tokens := strings.Fields(mnemonic)
	if len(tokens) < minWords {
		return shr.Share{}, slip39err.WithDetails(slip39err.ErrInvalidShare,
			map[string]string{"reason": "fewer than 20 words"})
	}

	indices, err := wordlist.WordsToIndices(tokens)
	if err != nil {
		return shr.Share{}, err
	}

	wordCount := len(indices)
	totalBits := wordCount * wordBits

	shareLen := -1
	for l := 0; ; l++ {
		content := headerBits + 8*l + checksumBits
		if content > totalBits {
			break
		}
		padding := totalBits - content
		if padding < wordBits {
			shareLen = l
			break
		}
	}
	if shareLen < 0 {
		return shr.Share{}, slip39err.WithDetails(slip39err.ErrInvalidShare,
			map[string]string{"reason": "word count does not correspond to any valid share-value length"})
	}

	content := headerBits + 8*shareLen + checksumBits
	padding := totalBits - content

	words16 := make([]uint16, wordCount)
	for i, idx := range indices {
		words16[i] = uint16(idx)
	}
	if !rs1024.Verify(customization(false), words16) && !rs1024.Verify(customization(true), words16) {
		return shr.Share{}, slip39err.ErrInvalidChecksum
	}
	ext := rs1024.Verify(customization(true), words16)

	bw := &bitWriter{}
	for _, v := range words16[:wordCount-3] {
		bw.writeBits(uint64(v), wordBits)
	}
	buf := bw.buf

	r := &bitReader{buf: buf}
	id := uint16(r.readBits(15))
	extBit := r.readBits(1) == 1
	e := uint8(r.readBits(4))
	gi := uint8(r.readBits(4))
	gt := uint8(r.readBits(4)) + 1
	g := uint8(r.readBits(4)) + 1
	mi := uint8(r.readBits(4))
	mt := uint8(r.readBits(4)) + 1

	if padBits := r.readBits(padding); padBits != 0 {
		return shr.Share{}, slip39err.WithDetails(slip39err.ErrInvalidShare,
			map[string]string{"reason": "non-zero padding"})
	}

	if extBit != ext {
		return shr.Share{}, slip39err.WithDetails(slip39err.ErrInvalidShare,
			map[string]string{"reason": "extendable bit disagrees with checksum customization"})
	}

	value := make([]byte, shareLen)
	for i := range value {
		value[i] = byte(r.readBits(8))
	}

	s := shr.Share{
		ID:                id,
		Extendable:        ext,
		IterationExponent: e,
		GroupIndex:        gi,
		GroupThreshold:    gt,
		GroupCount:        g,
		MemberIndex:       mi,
		MemberThreshold:   mt,
		Value:             value,
	}
	if err := s.Validate(); err != nil {
		return shr.Share{}, err
	}
	return s, nil
}
