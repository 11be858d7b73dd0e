package slip39

import (
	"io"
	"strings"

	"github.com/slip39kit/slip39/internal/feistel"
	"github.com/slip39kit/slip39/internal/mnemonic"
	"github.com/slip39kit/slip39/internal/passphrase"
	shr "github.com/slip39kit/slip39/internal/share"
	"github.com/slip39kit/slip39/internal/sss"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// GenerateParams collects every input to Generate.
type GenerateParams struct {
	GroupThreshold    int
	Groups            []GroupSpec
	MasterSecret      []byte
	Passphrase        string
	IterationExponent uint8
	Extendable        bool

	// Random supplies entropy for the id and the SSS random coefficients.
	// Callers normally pass sigilcrypto.Reader; tests may inject a fake.
	Random io.Reader
}

// Group is one group's mnemonics in member order.
type Group struct {
	Mnemonics []string
}

func validateGenerateParams(p GenerateParams) error {
	g := len(p.Groups)
	if p.GroupThreshold < 1 || p.GroupThreshold > g || g > 16 {
		return slip39err.WithDetails(slip39err.ErrInvalidConfiguration,
			map[string]string{"reason": "group threshold out of range"})
	}
	for _, spec := range p.Groups {
		if spec.Threshold < 1 || spec.Threshold > spec.Count || spec.Count > 16 {
			return slip39err.WithDetails(slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "member threshold/count out of range"})
		}
		if spec.Threshold == 1 && spec.Count != 1 {
			return slip39err.WithDetails(slip39err.ErrInvalidConfiguration,
				map[string]string{"reason": "a 1-of-N group must have exactly one member"})
		}
	}
	if len(p.MasterSecret) < 16 || len(p.MasterSecret)%2 != 0 {
		return slip39err.WithDetails(slip39err.ErrInvalidConfiguration,
			map[string]string{"reason": "master secret must be at least 16 bytes and of even length"})
	}
	if p.IterationExponent > 15 {
		return slip39err.WithDetails(slip39err.ErrInvalidConfiguration,
			map[string]string{"reason": "iteration exponent out of range"})
	}
	return nil
}

// Generate implements the SLIP-39 split: encrypt the master secret under the
// passphrase, split the result across groups, then split each group share
// across its members, and encode every member share as a mnemonic.
func Generate(p GenerateParams) ([]Group, error) {
	if err := validateGenerateParams(p); err != nil {
		return nil, err
	}

	rnd := p.Random
	normalized, err := passphrase.Normalize(p.Passphrase)
	if err != nil {
		return nil, err
	}

	id, err := randomID(rnd)
	if err != nil {
		return nil, err
	}

	fp := feistelParams(id, p.Extendable, p.IterationExponent, normalized)
	ems := feistel.Encrypt(fp, p.MasterSecret)

	groupShares, err := sss.Split(rnd, ems, p.GroupThreshold, len(p.Groups))
	if err != nil {
		return nil, err
	}

	groups := make([]Group, len(p.Groups))
	for gi, spec := range p.Groups {
		memberShares, err := sss.Split(rnd, groupShares[gi].Y, spec.Threshold, spec.Count)
		if err != nil {
			return nil, err
		}

		mnemonics := make([]string, spec.Count)
		for mi, ms := range memberShares {
			s := shr.Share{
				ID:                id,
				Extendable:        p.Extendable,
				IterationExponent: p.IterationExponent,
				GroupIndex:        uint8(gi),
				GroupThreshold:    uint8(p.GroupThreshold),
				GroupCount:        uint8(len(p.Groups)),
				MemberIndex:       uint8(mi),
				MemberThreshold:   uint8(spec.Threshold),
				Value:             ms.Y,
			}
			words, err := mnemonic.Encode(s)
			if err != nil {
				return nil, err
			}
			mnemonics[mi] = strings.Join(words, " ")
		}
		groups[gi] = Group{Mnemonics: mnemonics}
	}

	return groups, nil
}
