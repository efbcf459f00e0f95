package util

import (
	"errors"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

const FlagTypedArray = "FLAG_TYPED_ARRAY"

var (
	IsoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2}(?:\.\d*))(?:Z|(\+|-)([\d|:]*))?$`)
	BigIntPattern  = regexp.MustCompile(`^\d+n$`)
)

var ErrInvalidJSON = errors.New("invalid json")

// ReviveJSON decodes data and reconstructs typed values, see Revive.
func ReviveJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return Revive(plain(gjson.ParseBytes(data))), nil
}

// Revive walks a decoded JSON value bottom up and rebuilds typed-array
// envelopes as []byte, "<digits>n" strings as *big.Int and ISO dates as
// time.Time. Everything else is returned unchanged.
func Revive(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = Revive(child)
		}
		if b, ok := typedArray(v); ok {
			return b
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = Revive(child)
		}
		return v
	case string:
		return reviveString(v)
	default:
		return v
	}
}

func typedArray(m map[string]any) ([]byte, bool) {
	if flag, _ := m["flag"].(string); flag != FlagTypedArray {
		return nil, false
	}
	data, _ := m["data"].([]any)
	out := make([]byte, len(data))
	for i, n := range data {
		out[i] = byte(cast.ToInt64(n))
	}
	return out, true
}

func reviveString(s string) any {
	if BigIntPattern.MatchString(s) {
		n, ok := new(big.Int).SetString(s[:len(s)-1], 10)
		if ok {
			return n
		}
		return s
	}
	if IsoDatePattern.MatchString(s) {
		if t, err := parseISODate(s); err == nil {
			return t
		}
	}
	return s
}

func parseISODate(s string) (time.Time, error) {
	if strings.HasSuffix(s, "Z") || strings.ContainsAny(s[19:], "+-") {
		return time.Parse(time.RFC3339Nano, s)
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
}

func plain(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := map[string]any{}
		r.ForEach(func(k, v gjson.Result) bool {
			m[k.String()] = plain(v)
			return true
		})
		return m
	case r.IsArray():
		arr := []any{}
		r.ForEach(func(_, v gjson.Result) bool {
			arr = append(arr, plain(v))
			return true
		})
		return arr
	}
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Num
	case gjson.True, gjson.False:
		return r.Bool()
	default:
		return nil
	}
}
