package persist

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/xpathfinder/savethedogs/internal/profile"
)

var checksumKey = []byte("savethedogs/profile/v1")

// EncodeProfile renders a profile as base64("reward;budget;health;level")
// followed by "." and a keyed blake2b-256 checksum of the plain text.
func EncodeProfile(p profile.Profile) []byte {
	plain := fmt.Sprintf("%d;%d;%d;%d", p.RewardCurrency, p.PurchasedBarrierBudget, p.PurchasedTargetHealth, p.Level)
	var b bytes.Buffer
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(plain)))
	b.WriteByte('.')
	b.WriteString(checksum([]byte(plain)))
	b.WriteByte('\n')
	return b.Bytes()
}

// DecodeProfile parses a blob written by EncodeProfile. Any damage is
// reported as ErrMalformedProfile.
func DecodeProfile(blob []byte) (profile.Profile, error) {
	body, sum, ok := strings.Cut(strings.TrimSpace(string(blob)), ".")
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: missing checksum", ErrMalformedProfile)
	}
	plain, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
	}
	if checksum(plain) != sum {
		return profile.Profile{}, fmt.Errorf("%w: checksum mismatch", ErrMalformedProfile)
	}

	fields := strings.Split(string(plain), ";")
	if len(fields) != 4 {
		return profile.Profile{}, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedProfile, len(fields))
	}
	var vals [4]int64
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("%w: field %d: %v", ErrMalformedProfile, i, err)
		}
		vals[i] = v
	}
	p := profile.Profile{
		RewardCurrency:         vals[0],
		PurchasedBarrierBudget: vals[1],
		PurchasedTargetHealth:  vals[2],
		Level:                  vals[3],
	}
	if !p.Valid() {
		return profile.Profile{}, fmt.Errorf("%w: negative field", ErrMalformedProfile)
	}
	return p, nil
}

func checksum(plain []byte) string {
	h, err := blake2b.New256(checksumKey)
	if err != nil {
		// only fails for keys longer than 64 bytes
		panic(err)
	}
	h.Write(plain)
	return hex.EncodeToString(h.Sum(nil))
}
