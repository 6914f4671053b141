package dshot

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Rate is a DSHOT bit rate in kbit/s.
type Rate uint16

// Supported DSHOT rates.
const (
	DShot150  Rate = 150
	DShot300  Rate = 300
	DShot600  Rate = 600
	DShot1200 Rate = 1200
)

// ParseRate accepts "600", "dshot600" or "DSHOT600".
func ParseRate(s string) (Rate, error) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "dshot")
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "parse dshot rate %q", s)
	}
	switch r := Rate(n); r {
	case DShot150, DShot300, DShot600, DShot1200:
		return r, nil
	default:
		return 0, errors.Newf("unsupported dshot rate %q", s)
	}
}

func (r Rate) String() string {
	return "DSHOT" + strconv.Itoa(int(r))
}

// BitPeriod is the duration of one logical bit.
func (r Rate) BitPeriod() time.Duration {
	return time.Second / time.Duration(int64(r)*1000)
}

// FrameDuration is the duration of a whole 16-bit frame.
func (r Rate) FrameDuration() time.Duration {
	return BitsPerFrame * r.BitPeriod()
}
