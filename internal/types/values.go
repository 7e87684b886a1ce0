package types

import (
	"slices"

	"github.com/ghettovoice/sipparse/internal/util"
)

// Values maps a parameter name to a list of values.
// Keys are case-insensitive, they are stored lower-cased.
// A parameter without a value has an empty string value.
type Values map[string][]string

// Get returns values associated with the given key.
func (vals Values) Get(key string) []string { return vals[util.LCase(key)] }

// First returns the first value of the key.
func (vals Values) First(key string) (string, bool) {
	v := vals[util.LCase(key)]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Last returns the last value of the key.
func (vals Values) Last(key string) (string, bool) {
	v := vals[util.LCase(key)]
	if len(v) == 0 {
		return "", false
	}
	return v[len(v)-1], true
}

// Set sets the key to value. It replaces any existing values.
func (vals Values) Set(key, value string) Values {
	vals[util.LCase(key)] = []string{value}
	return vals
}

// Append adds the value to the key.
func (vals Values) Append(key, value string) Values {
	key = util.LCase(key)
	vals[key] = append(vals[key], value)
	return vals
}

// Del deletes the values associated with the key.
func (vals Values) Del(key string) Values {
	delete(vals, util.LCase(key))
	return vals
}

// Has checks whether a given key is in the list.
func (vals Values) Has(key string) bool {
	_, ok := vals[util.LCase(key)]
	return ok
}

// Keys returns keys sorted alphabetically.
func (vals Values) Keys() []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy of the map.
func (vals Values) Clone() Values {
	if vals == nil {
		return nil
	}
	vals2 := make(Values, len(vals))
	for k, vs := range vals {
		vals2[k] = slices.Clone(vs)
	}
	return vals2
}
