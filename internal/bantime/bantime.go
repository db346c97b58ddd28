// Package bantime converts the time annotations printed by fail2ban-client
// into absolute expiry instants and formats remaining durations for display.
//
// Two encodings are understood for a ban's time text:
//   - a bare unix epoch ("1718000000")
//   - one or more "YYYY-MM-DD HH:MM:SS [±HHMM]" stamps, as printed by
//     "get <jail> banip --with-time" ("2024-06-10 08:00:00 + 600 = 2024-06-10 08:10:00")
//
// In both cases an instant in the future is taken as the lift time and an
// instant in the past as the ban start, to which the jail's bantime is added.
package bantime

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
	"time"
)

// nowFunc is swapped out by tests to pin the clock.
var nowFunc = time.Now

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ResolveExpiry turns the time text attached to one banned address into the
// unix epoch at which the ban lifts. bantime is the jail's configured ban
// duration in seconds, or nil when unknown. It returns nil when the text
// carries no recognizable instant.
func ResolveExpiry(token string, bantime *uint64) *int64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if isDigits(token) {
		epoch, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil
		}
		return liftTime(epoch, bantime)
	}

	stamp, ok := lastStamp(strings.Fields(token))
	if !ok {
		return nil
	}
	return liftTime(stamp.Unix(), bantime)
}

func liftTime(epoch int64, bantime *uint64) *int64 {
	if epoch >= nowFunc().Unix() || bantime == nil {
		return &epoch
	}
	// Bantimes that would run past the largest instant are clamped to it.
	bt := *bantime
	if bt > math.MaxInt64 || (epoch > 0 && int64(bt) > math.MaxInt64-epoch) {
		end := int64(math.MaxInt64)
		return &end
	}
	end := epoch + int64(bt)
	return &end
}

// lastStamp returns the last date+time pair found in fields, honouring an
// optional numeric UTC offset directly after the time.
func lastStamp(fields []string) (time.Time, bool) {
	var (
		found time.Time
		ok    bool
	)
	for i := 0; i+1 < len(fields); i++ {
		if !isDate(fields[i]) || !isClock(fields[i+1]) {
			continue
		}
		loc := time.UTC
		if i+2 < len(fields) {
			if offset, valid := parseOffset(fields[i+2]); valid {
				loc = time.FixedZone("", offset)
			}
		}
		t, err := time.ParseInLocation(dateTimeLayout, fields[i]+" "+fields[i+1], loc)
		if err != nil {
			continue
		}
		found, ok = t, true
	}
	return found, ok
}

func isDate(s string) bool {
	if len(s) != len(dateLayout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	return isDigits(s[0:4]) && isDigits(s[5:7]) && isDigits(s[8:10])
}

func isClock(s string) bool {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return false
	}
	return isDigits(s[0:2]) && isDigits(s[3:5]) && isDigits(s[6:8])
}

// parseOffset accepts "+0200", "-05:30" and returns the offset in seconds.
func parseOffset(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	digits := strings.Replace(s[1:], ":", "", 1)
	if len(digits) != 4 || !isDigits(digits) {
		return 0, false
	}
	hours, _ := strconv.Atoi(digits[:2])
	minutes, _ := strconv.Atoi(digits[2:])
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	offset := hours*3600 + minutes*60
	if s[0] == '-' {
		offset = -offset
	}
	return offset, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseDurationString parses compact durations such as "1d2h3m4s", "10m" or
// "90". Units are w, d, h, m and s in either case; trailing digits without a
// unit count as seconds. Whitespace between groups is ignored. Values that
// do not fit in a uint64 are rejected.
func ParseDurationString(text string) (uint64, bool) {
	var (
		total    uint64
		pending  uint64
		digits   bool
		consumed bool
	)
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			next, ok := mulAdd(pending, 10, uint64(r-'0'))
			if !ok {
				return 0, false
			}
			pending, digits = next, true
		case r == ' ' || r == '\t':
			continue
		default:
			mult, ok := unitSeconds(r)
			if !ok || !digits {
				return 0, false
			}
			if total, ok = mulAdd(pending, mult, total); !ok {
				return 0, false
			}
			pending, digits, consumed = 0, false, true
		}
	}
	if digits {
		var ok bool
		if total, ok = mulAdd(pending, 1, total); !ok {
			return 0, false
		}
		consumed = true
	}
	if !consumed {
		return 0, false
	}
	return total, true
}

// mulAdd returns a*b+c, reporting false when the result overflows.
func mulAdd(a, b, c uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, false
	}
	sum, carry := bits.Add64(lo, c, 0)
	return sum, carry == 0
}

func unitSeconds(r rune) (uint64, bool) {
	switch r {
	case 'w', 'W':
		return 7 * 86400, true
	case 'd', 'D':
		return 86400, true
	case 'h', 'H':
		return 3600, true
	case 'm', 'M':
		return 60, true
	case 's', 'S':
		return 1, true
	}
	return 0, false
}

// FormatDuration renders seconds as "1d 2h 3m". Seconds are only shown when
// no larger unit is present; zero renders as "0s".
func FormatDuration(seconds uint64) string {
	return strings.Join(durationTokens(seconds), " ")
}

// FormatDurationCompact is FormatDuration without separators ("1d2h3m").
func FormatDurationCompact(seconds uint64) string {
	return strings.Join(durationTokens(seconds), "")
}

func durationTokens(seconds uint64) []string {
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	var tokens []string
	if days > 0 {
		tokens = append(tokens, strconv.FormatUint(days, 10)+"d")
	}
	if hours > 0 {
		tokens = append(tokens, strconv.FormatUint(hours, 10)+"h")
	}
	if minutes > 0 {
		tokens = append(tokens, strconv.FormatUint(minutes, 10)+"m")
	}
	if len(tokens) == 0 {
		tokens = append(tokens, strconv.FormatUint(secs, 10)+"s")
	}
	return tokens
}

// Remaining returns the seconds left until expiry, floored at zero. The
// second result is false when no expiry is known.
func Remaining(expiry *int64) (uint64, bool) {
	if expiry == nil {
		return 0, false
	}
	left := *expiry - nowFunc().Unix()
	if left < 0 {
		return 0, true
	}
	return uint64(left), true
}
