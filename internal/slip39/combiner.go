package slip39

import (
	"errors"
	"sort"
	"strconv"

	"github.com/slip39kit/slip39/internal/feistel"
	"github.com/slip39kit/slip39/internal/mnemonic"
	"github.com/slip39kit/slip39/internal/passphrase"
	shr "github.com/slip39kit/slip39/internal/share"
	"github.com/slip39kit/slip39/internal/sss"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// CombineParams collects every input to Combine.
type CombineParams struct {
	// Mnemonics is the raw share set, in any order, one mnemonic per share.
	Mnemonics []string

	Passphrase string
}

// groupBucket accumulates the member shares seen so far for one group index.
type groupBucket struct {
	threshold uint8
	members   map[uint8]shr.Share
}

// Combine decodes every mnemonic, validates the resulting share set for
// quorum and internal consistency, recovers the group shares and then the
// encrypted master secret, and decrypts it under passphrase.
func Combine(p CombineParams) ([]byte, error) {
	if len(p.Mnemonics) == 0 {
		return nil, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
			map[string]string{"reason": "no shares provided"})
	}

	shares := make([]shr.Share, 0, len(p.Mnemonics))
	for _, m := range p.Mnemonics {
		s, err := mnemonic.Decode(m)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}

	groups, groupThreshold, err := validateShareSet(shares)
	if err != nil {
		return nil, err
	}

	normalized, err := passphrase.Normalize(p.Passphrase)
	if err != nil {
		return nil, err
	}

	first := shares[0]

	groupIndices := make([]uint8, 0, len(groups))
	for gi := range groups {
		groupIndices = append(groupIndices, gi)
	}
	sort.Slice(groupIndices, func(i, j int) bool { return groupIndices[i] < groupIndices[j] })

	groupPoints := make([]sss.Point, 0, len(groupIndices))
	for _, gi := range groupIndices {
		bucket := groups[gi]

		memberIndices := make([]uint8, 0, len(bucket.members))
		for mi := range bucket.members {
			memberIndices = append(memberIndices, mi)
		}
		sort.Slice(memberIndices, func(i, j int) bool { return memberIndices[i] < memberIndices[j] })

		points := make([]sss.Point, 0, bucket.threshold)
		for _, mi := range memberIndices[:bucket.threshold] {
			points = append(points, sss.Point{X: mi, Y: bucket.members[mi].Value})
		}

		groupShare, err := sss.Recover(int(bucket.threshold), points)
		if err != nil {
			return nil, translateShareError(err)
		}
		groupPoints = append(groupPoints, sss.Point{X: gi, Y: groupShare})
	}

	ems, err := sss.Recover(int(groupThreshold), groupPoints)
	if err != nil {
		return nil, translateShareError(err)
	}

	fp := feistelParams(first.ID, first.Extendable, first.IterationExponent, normalized)
	ms := feistel.Decrypt(fp, ems)

	return ms, nil
}

// validateShareSet checks §4.10's cross-share invariants and buckets member
// shares by group index. It returns the buckets and the actual group
// threshold (GT) shared by every share.
func validateShareSet(shares []shr.Share) (map[uint8]*groupBucket, uint8, error) {
	first := shares[0]
	valueLen := len(first.Value)

	for _, s := range shares {
		if s.ID != first.ID || s.Extendable != first.Extendable ||
			s.IterationExponent != first.IterationExponent ||
			s.GroupThreshold != first.GroupThreshold ||
			s.GroupCount != first.GroupCount {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{"reason": "shares come from different share sets"})
		}
		if len(s.Value) != valueLen {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{"reason": "share values have mismatched lengths"})
		}
		if valueLen < 16 {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{"reason": "share value shorter than 16 bytes"})
		}
	}

	if first.GroupThreshold > first.GroupCount {
		return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
			map[string]string{"reason": "group threshold exceeds group count"})
	}

	groups := make(map[uint8]*groupBucket)
	for _, s := range shares {
		bucket, ok := groups[s.GroupIndex]
		if !ok {
			bucket = &groupBucket{threshold: s.MemberThreshold, members: make(map[uint8]shr.Share)}
			groups[s.GroupIndex] = bucket
		}
		if bucket.threshold != s.MemberThreshold {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{"reason": "group has shares with different member thresholds"})
		}
		if _, dup := bucket.members[s.MemberIndex]; dup {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{"reason": "duplicate member index in group"})
		}
		bucket.members[s.MemberIndex] = s
	}

	if len(groups) != int(first.GroupThreshold) {
		return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
			map[string]string{"reason": "share set does not contain exactly GT distinct groups"})
	}

	for gi, bucket := range groups {
		if len(bucket.members) < int(bucket.threshold) {
			return nil, 0, slip39err.WithDetails(slip39err.ErrInvalidShareSet,
				map[string]string{
					"reason": "not enough member shares in group",
					"group":  strconv.Itoa(int(gi)),
				})
		}
	}

	return groups, first.GroupThreshold, nil
}

// translateShareError turns an internal sss error (most notably a digest
// mismatch) into the InvalidShare error kind the combiner surfaces to callers.
func translateShareError(err error) error {
	if errors.Is(err, sss.ErrDigestMismatch) {
		return slip39err.WithDetails(slip39err.ErrInvalidShare,
			map[string]string{"reason": "digest mismatch on recovery"})
	}
	return err
}
