package util

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	FormatStandard  = "standard"
	FormatProposals = "proposals"
	FormatRelative  = "relative"
)

// KnownFormats maps named formats to Go layouts.
var KnownFormats = map[string]string{
	FormatStandard:  "Jan 02 2006 15:04",
	FormatProposals: "2006/01/02 03:04 PM",
}

// maximum distance from the epoch a date can be rendered at, in ms
const maxDateMillis = 8.64e15

var ErrDateOutOfRange = errors.New("date out of range")

var now = time.Now

// DateResult is the outcome of formatting a date. Fallback is set when the
// input could not be interpreted; Text then holds the input unchanged.
type DateResult struct {
	Text     string
	Fallback bool
	Err      error
}

// FormatDate renders date, given in seconds since the epoch, with a named
// format, "relative", or a Go layout. It never fails: unparseable input is
// returned as is.
func FormatDate(date any, formatType string) string {
	return FormatDateResult(date, formatType).Text
}

func FormatDateResult(date any, formatType string) DateResult {
	t, err := secondsToTime(date)
	if err != nil {
		return DateResult{Text: cast.ToString(date), Fallback: true, Err: err}
	}

	if formatType == FormatRelative {
		return DateResult{Text: formatRelative(t, now())}
	}

	layout, ok := KnownFormats[formatType]
	if !ok {
		layout = formatType
	}
	if layout == "" {
		layout = KnownFormats[FormatStandard]
	}
	return DateResult{Text: t.Format(layout)}
}

func secondsToTime(date any) (time.Time, error) {
	var ms float64
	switch v := date.(type) {
	case string:
		// Base 10 only, so "0100" is 100 rather than octal.
		secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", v, err)
		}
		ms = float64(secs) * 1000
	case nil:
		return time.Time{}, errors.New("nil date")
	default:
		secs, err := cast.ToFloat64E(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %v: %w", v, err)
		}
		ms = secs * 1000
	}

	if math.IsNaN(ms) || math.Abs(ms) > maxDateMillis {
		return time.Time{}, ErrDateOutOfRange
	}
	return time.UnixMilli(int64(math.Round(ms))), nil
}

// formatRelative follows the en-US wording of date-fns formatRelative.
func formatRelative(t, base time.Time) string {
	clock := t.Format("3:04 PM")
	switch days := calendarDays(t, base); {
	case days < -6:
		return t.Format("01/02/2006")
	case days < -1:
		return "last " + t.Weekday().String() + " at " + clock
	case days < 0:
		return "yesterday at " + clock
	case days < 1:
		return "today at " + clock
	case days < 2:
		return "tomorrow at " + clock
	case days < 7:
		return t.Weekday().String() + " at " + clock
	default:
		return t.Format("01/02/2006")
	}
}

func calendarDays(t, base time.Time) int {
	ty, tm, td := t.In(base.Location()).Date()
	by, bm, bd := base.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// FormatEther renders an amount in the smallest unit as a decimal string in
// whole units, always with a fractional part ("1.0", "0.25").
func FormatEther(wei decimal.Decimal, decimals int32) string {
	s := wei.Shift(-decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func FormatEtherBig(wei *big.Int, decimals int32) string {
	if wei == nil {
		return FormatEther(decimal.Zero, decimals)
	}
	return FormatEther(decimal.NewFromBigInt(wei, 0), decimals)
}

// ParseEther converts a decimal amount in whole units to the smallest unit.
func ParseEther(amount string) (*big.Int, error) {
	return ParseUnits(amount, 18)
}

func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %v", err)
	}
	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("invalid amount: %s has more than %d decimals", amount, decimals)
	}
	return shifted.BigInt(), nil
}
