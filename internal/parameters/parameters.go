// Package parameters handles configuration strings of the form "key1=value1,key2,key3=value3",
// used to set hyper-parameters of trainers and players from a single flag.
package parameters

import (
	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/pkg/errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Params maps keys to their (possibly empty) values.
type Params map[string]string

// NewFromConfigString parses the config string. Empty parts are ignored, and a key without "="
// is stored with an empty value (which GetParamOr reads as true for bools).
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// String returns the params back in config string format, with sorted keys.
func (p Params) String() string {
	keys := slices.Sorted(maps.Keys(p))
	return strings.Join(generics.SliceMap(keys, func(key string) string {
		if p[key] == "" {
			return key
		}
		return key + "=" + p[key]
	}), ",")
}

// Value types supported by GetParamOr and PopParamOr.
type Value interface {
	bool | int | float32 | float64 | string
}

// PopParamOr is like GetParamOr, but it also deletes the key from params.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr parses the value of key to type T if it is present, or returns defaultValue if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, found := params[key]
	if !found {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		parsed, err = strconv.Atoi(value)
	case float32:
		var f float64
		f, err = strconv.ParseFloat(value, 32)
		parsed = float32(f)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			err = errors.New("not a bool")
		}
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// CheckAllConsumed returns an error listing the keys left in params, to be used after all
// known keys were read with PopParamOr.
func CheckAllConsumed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	return errors.Errorf("unknown configuration parameter(s): %s", strings.Join(slices.Sorted(maps.Keys(params)), ", "))
}
