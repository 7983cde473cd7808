// Package noteid converts between internal note ids (UUIDs) and their
// canonical external form, the unpadded base64url encoding of the 16 id bytes.
package noteid

import (
	"encoding/base64"
	"regexp"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LegacyLengthThreshold is the longest external id that can still be canonical.
// Longer ids are suspected to be produced by the legacy string compressor.
const LegacyLengthThreshold = 4*36/3 - 1

// EncodedLength is the length of every canonical external id
const EncodedLength = 22

var ErrInvalid = errors.New("invalid note id")

var validPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

var encoding = base64.RawURLEncoding

// Encode returns the canonical external id
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Decode parses a canonical external id
func Decode(external string) (uuid.UUID, error) {
	if len(external) != EncodedLength {
		return uuid.Nil, ErrInvalid
	}
	b, err := encoding.DecodeString(external)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalid, err.Error())
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalid, err.Error())
	}
	return id, nil
}

// IsValid reports whether internal is a dashed RFC 4122 UUID string
func IsValid(internal string) bool {
	return validPattern.MatchString(internal)
}

// EncodeString encodes a dashed UUID string, failing when it is not valid
func EncodeString(internal string) (string, error) {
	if !IsValid(internal) {
		return "", ErrInvalid
	}
	id, err := uuid.Parse(internal)
	if err != nil {
		return "", errors.Wrap(ErrInvalid, err.Error())
	}
	return Encode(id), nil
}

// LooksLegacyEncoded reports whether an external id is too long to be canonical
func LooksLegacyEncoded(external string) bool {
	return len(external) > LegacyLengthThreshold
}
