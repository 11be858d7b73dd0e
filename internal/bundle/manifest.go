package bundle

import (
	"time"

	shr "github.com/slip39kit/slip39/internal/share"
)

// NewManifest builds a Manifest from the header fields common to every
// share in a just-generated set.
func NewManifest(groupThreshold, groupCount, shareValueLen int, id uint16, extendable bool, iterationExponent int) Manifest {
	return Manifest{
		CreatedAt:         time.Now().UTC(),
		GroupThreshold:    groupThreshold,
		GroupCount:        groupCount,
		ShareValueLen:     shareValueLen,
		Identifier:        id,
		Extendable:        extendable,
		IterationExponent: iterationExponent,
	}
}

// ManifestFromShare derives a Manifest from a single decoded share's header
// fields; callers typically call this once per share set, using any member.
func ManifestFromShare(s shr.Share) Manifest {
	return NewManifest(
		int(s.GroupThreshold),
		int(s.GroupCount),
		len(s.Value),
		s.ID,
		s.Extendable,
		int(s.IterationExponent),
	)
}
