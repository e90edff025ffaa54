package tz

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidPacked is returned when packed zone data is malformed.
var ErrInvalidPacked = errors.New("invalid packed zone")

const base60 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func base60Digit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 36, true
	}
	return 0, false
}

// unpackBase60 decodes a base-60 number with an optional sign and fractional
// part (e.g., -4s.Q).
func unpackBase60(s string) (float64, error) {
	whole, frac, _ := strings.Cut(s, ".")
	sign := 1.0
	if strings.HasPrefix(whole, "-") {
		whole, sign = whole[1:], -1
	}
	var out float64
	for i := 0; i < len(whole); i++ {
		d, ok := base60Digit(whole[i])
		if !ok {
			return 0, fmt.Errorf("%w: bad base60 digit %q in %q", ErrInvalidPacked, whole[i], s)
		}
		out = 60*out + float64(d)
	}
	mul := 1.0
	for i := 0; i < len(frac); i++ {
		d, ok := base60Digit(frac[i])
		if !ok {
			return 0, fmt.Errorf("%w: bad base60 digit %q in %q", ErrInvalidPacked, frac[i], s)
		}
		mul /= 60
		out += float64(d) * mul
	}
	return out * sign, nil
}

func packBase60Fraction(b []byte, fraction float64, precision int) []byte {
	var buf []byte
	buf = append(buf, '.')
	for ; precision > 0; precision-- {
		fraction *= 60
		cur := min(int(math.Floor(fraction+0.000001)), 59)
		buf = append(buf, base60[cur])
		fraction -= float64(cur)
		if cur != 0 {
			b = append(b, buf...)
			buf = buf[:0]
		}
	}
	return b
}

// appendBase60 encodes n with up to precision fractional digits.
func appendBase60(b []byte, n float64, precision int) []byte {
	abs := math.Abs(n)
	whole := int64(math.Floor(abs))
	frac := packBase60Fraction(nil, abs-float64(whole), min(precision, 10))

	var out []byte
	for ; whole > 0; whole /= 60 {
		out = append(out, base60[whole%60])
	}
	if n < 0 {
		out = append(out, '-')
	}
	slices.Reverse(out)

	switch {
	case len(out) != 0 && len(frac) != 0:
		return append(append(b, out...), frac...)
	case len(frac) == 0 && string(out) == "-":
		return append(b, '0')
	case len(out) != 0:
		return append(b, out...)
	case len(frac) != 0:
		return append(b, frac...)
	}
	return append(b, '0')
}

// Unpack decodes a zone in the moment-timezone packed format:
//
//	name|abbrs|offsets|indices|untils|population
//
// Offsets (minutes west of UTC) and until deltas (minutes) are base-60
// numbers separated by spaces; indices are single base-60 digits mapping each
// period to an abbreviation and offset.
func Unpack(s string) (*Zone, error) {
	data := strings.Split(s, "|")
	if len(data) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 fields, got %d", ErrInvalidPacked, len(data))
	}
	if data[0] == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidPacked)
	}
	z := &Zone{
		Name: data[0],
	}

	abbrs := strings.Split(data[1], " ")
	rawOffsets := strings.Split(data[2], " ")
	offsets := make([]int, len(rawOffsets))
	for i, x := range rawOffsets {
		v, err := unpackBase60(x)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: offset %d: %w", z.Name, i, err)
		}
		offsets[i] = int(math.Round(-v))
	}

	indices := data[3]
	if len(indices) == 0 {
		return nil, fmt.Errorf("unpack %s: %w: no periods", z.Name, ErrInvalidPacked)
	}
	z.Abbrs = make([]string, len(indices))
	z.Offsets = make([]int, len(indices))
	for i := 0; i < len(indices); i++ {
		idx, ok := base60Digit(indices[i])
		if !ok || idx >= len(abbrs) || idx >= len(offsets) {
			return nil, fmt.Errorf("unpack %s: %w: bad index %q", z.Name, ErrInvalidPacked, indices[i])
		}
		z.Abbrs[i] = abbrs[idx]
		z.Offsets[i] = offsets[idx]
	}

	var deltas []string
	if data[4] != "" {
		deltas = strings.Split(data[4], " ")
	}
	if len(deltas) < len(indices)-1 {
		return nil, fmt.Errorf("unpack %s: %w: expected %d untils, got %d", z.Name, ErrInvalidPacked, len(indices)-1, len(deltas))
	}
	z.Untils = make([]int64, len(indices))
	var last float64
	for i := 0; i < len(indices)-1; i++ {
		v, err := unpackBase60(deltas[i])
		if err != nil {
			return nil, fmt.Errorf("unpack %s: until %d: %w", z.Name, i, err)
		}
		last = math.Round(last + v*60000)
		z.Untils[i] = int64(last)
	}
	z.Untils[len(z.Untils)-1] = Forever

	if len(data) > 5 && data[5] != "" {
		p, err := strconv.ParseFloat(data[5], 64)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w: bad population %q", z.Name, ErrInvalidPacked, data[5])
		}
		z.Population = int64(p)
	}
	if !z.Valid() {
		return nil, fmt.Errorf("unpack %s: %w: untils not increasing", z.Name, ErrInvalidPacked)
	}
	return z, nil
}

// Pack encodes a zone in the format read by Unpack. Offsets are rounded to
// the second and untils to the second.
func Pack(z *Zone) string {
	var b []byte
	b = append(b, z.Name...)
	b = append(b, '|')

	type key struct {
		abbr string
		off  int
	}
	var (
		uniq    []key
		indices []byte
		seen    = map[key]int{}
	)
	for i := range z.Abbrs {
		k := key{z.Abbrs[i], z.Offsets[i]}
		idx, ok := seen[k]
		if !ok {
			idx = len(uniq)
			seen[k] = idx
			uniq = append(uniq, k)
		}
		indices = appendBase60(indices, float64(idx), 0)
	}
	for i, k := range uniq {
		if i != 0 {
			b = append(b, ' ')
		}
		b = append(b, k.abbr...)
	}
	b = append(b, '|')
	for i, k := range uniq {
		if i != 0 {
			b = append(b, ' ')
		}
		b = appendBase60(b, float64(-k.off), 1)
	}
	b = append(b, '|')
	b = append(b, indices...)
	b = append(b, '|')

	var last int64
	for i := 0; i < len(z.Untils)-1; i++ {
		if i != 0 {
			b = append(b, ' ')
		}
		b = appendBase60(b, math.Round(float64(z.Untils[i]-last)/1000)/60, 1)
		last = z.Untils[i]
	}
	b = append(b, '|')
	b = appendPopulation(b, z.Population)
	return string(b)
}

// appendPopulation encodes n with two significant digits (e.g., 21e6).
func appendPopulation(b []byte, n int64) []byte {
	if n <= 0 {
		return b
	}
	if n < 1000 {
		return strconv.AppendInt(b, n, 10)
	}
	exp := len(strconv.FormatInt(n, 10)) - 2
	b = strconv.AppendInt(b, int64(math.Round(float64(n)/math.Pow10(exp))), 10)
	b = append(b, 'e')
	return strconv.AppendInt(b, int64(exp), 10)
}
