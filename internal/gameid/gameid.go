// Package gameid generates short, time-sortable identifiers for lotto games.
package gameid

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/google/uuid"
)

// Crockford's base32, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID.
const Length = 26

// FromRand returns a game ID whose random bits come from rng. The timestamp
// part still comes from the wall clock.
func FromRand(rng *rand.Rand) (string, error) {
	id, err := uuid.NewV7FromReader(&randReader{rng: rng})
	if err != nil {
		return "", fmt.Errorf("generating game id: %w", err)
	}
	return encodeBase32(id), nil
}

type randReader struct {
	rng *rand.Rand
}

var _ io.Reader = (*randReader)(nil)

func (r *randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// encodeBase32 encodes the 128-bit UUID as 26 characters, five bits at a time.
func encodeBase32(data uuid.UUID) string {
	result := make([]byte, Length)
	for i := range Length {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}
