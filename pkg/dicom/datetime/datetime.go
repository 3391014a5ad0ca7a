// Package datetime parses and formats the DA, TM and DT value representations
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical layouts
const (
	DateLayout             = "20060102"
	TimeLayout             = "150405.000000"
	DateTimeLayout         = "20060102150405.000000"
	DateTimeOffsetLayout   = "20060102150405.000000-0700"
	legacyDateLayout       = "2006.01.02"
	maxFractionDigits      = 6
	nanosPerFractionDigit6 = 1000
)

// ParseDA parses YYYYMMDD, accepting the retired YYYY.MM.DD form
func ParseDA(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := DateLayout
	if len(s) == len(legacyDateLayout) && strings.Count(s, ".") == 2 {
		layout = legacyDateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DA %q: %w", s, err)
	}
	return t, nil
}

// FormatDA renders YYYYMMDD
func FormatDA(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTM parses HH[MM[SS[.F{1,6}]]], accepting the retired HH:MM:SS form.
// The result carries the zero date in UTC.
func ParseTM(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	raw := s
	if strings.Contains(s, ":") {
		s = strings.ReplaceAll(s, ":", "")
	}
	h, m, sec, nanos, err := parseClock(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid TM %q: %w", raw, err)
	}
	return time.Date(0, 1, 1, h, m, sec, nanos, time.UTC), nil
}

// FormatTM renders HHMMSS.FFFFFF
func FormatTM(t time.Time) string {
	return t.Format(TimeLayout)
}

func parseClock(s string) (h, m, sec, nanos int, err error) {
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s, frac = s[:i], s[i+1:]
		if len(s) != 6 {
			return 0, 0, 0, 0, fmt.Errorf("fraction without seconds")
		}
	}
	switch len(s) {
	case 2, 4, 6:
	default:
		return 0, 0, 0, 0, fmt.Errorf("bad length %d", len(s))
	}
	if h, err = digits(s[0:2], 0, 23); err != nil {
		return
	}
	if len(s) >= 4 {
		if m, err = digits(s[2:4], 0, 59); err != nil {
			return
		}
	}
	if len(s) == 6 {
		// 60 allows a leap second
		if sec, err = digits(s[4:6], 0, 60); err != nil {
			return
		}
		if sec == 60 {
			sec = 59
		}
	}
	if frac != "" {
		if len(frac) > maxFractionDigits {
			return 0, 0, 0, 0, fmt.Errorf("fraction longer than %d digits", maxFractionDigits)
		}
		padded := frac + strings.Repeat("0", maxFractionDigits-len(frac))
		var micros int
		if micros, err = digits(padded, 0, 999999); err != nil {
			return
		}
		nanos = micros * nanosPerFractionDigit6
	}
	return h, m, sec, nanos, nil
}

// ParseDT parses YYYY[MM[DD[HH[MM[SS[.F{1,6}]]]]]][&ZZXX]. Without an offset
// the result is in UTC.
func ParseDT(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	raw := s
	loc := time.UTC
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		off := s[i:]
		s = s[:i]
		if len(off) != 5 {
			return time.Time{}, fmt.Errorf("invalid DT %q: bad offset", raw)
		}
		hh, err := digits(off[1:3], 0, 14)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
		mm, err := digits(off[3:5], 0, 59)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
		secs := hh*3600 + mm*60
		if off[0] == '-' {
			secs = -secs
		}
		loc = time.FixedZone(off, secs)
	}
	datePart, clockPart := s, ""
	if len(s) > 8 {
		datePart, clockPart = s[:8], s[8:]
	}
	var year, month, day = 0, 1, 1
	var err error
	switch len(datePart) {
	case 8:
		if day, err = digits(datePart[6:8], 1, 31); err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
		fallthrough
	case 6:
		if month, err = digits(datePart[4:6], 1, 12); err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
		fallthrough
	case 4:
		if year, err = digits(datePart[0:4], 0, 9999); err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
	default:
		return time.Time{}, fmt.Errorf("invalid DT %q: bad date length", raw)
	}
	var h, m, sec, nanos int
	if clockPart != "" {
		if h, m, sec, nanos, err = parseClock(clockPart); err != nil {
			return time.Time{}, fmt.Errorf("invalid DT %q: %w", raw, err)
		}
	}
	t := time.Date(year, time.Month(month), day, h, m, sec, nanos, loc)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid DT %q: day out of range", raw)
	}
	return t, nil
}

// FormatDT renders YYYYMMDDHHMMSS.FFFFFF, with the UTC offset when withOffset
func FormatDT(t time.Time, withOffset bool) string {
	if withOffset {
		return t.Format(DateTimeOffsetLayout)
	}
	return t.Format(DateTimeLayout)
}

// Combine joins a DA value and an optional TM value. A DT value, when given,
// takes precedence.
func Combine(dt, da, tm string) (time.Time, error) {
	if strings.TrimSpace(dt) != "" {
		return ParseDT(dt)
	}
	d, err := ParseDA(da)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(tm) == "" {
		return d, nil
	}
	c, err := ParseTM(tm)
	if err != nil {
		return d, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), c.Nanosecond(), time.UTC), nil
}

// IsRange returns true for range matching values such as "20200101-20201231"
func IsRange(s string) bool {
	return strings.Contains(s, "-")
}

func digits(s string, lo, hi int) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non digit in %q", s)
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d out of range [%d,%d]", v, lo, hi)
	}
	return v, nil
}
