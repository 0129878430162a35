package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Override is an optional amount that replaces a computed default when set.
// The zero value means "use the default"; Set(0) is an explicit zero.
type Override struct {
	value float64
	set   bool
}

// Set returns an override carrying v.
func Set(v float64) Override {
	return Override{value: v, set: true}
}

// UseDefault returns an unset override.
func UseDefault() Override {
	return Override{}
}

// Value returns the override amount and whether it is set.
func (o Override) Value() (float64, bool) {
	return o.value, o.set
}

// IsSet reports whether the override replaces the default.
func (o Override) IsSet() bool {
	return o.set
}

// Or returns the override amount when set, otherwise def.
func (o Override) Or(def float64) float64 {
	if o.set {
		return o.value
	}
	return def
}

// IsZero lets encoding/json omit unset overrides with `omitzero`.
func (o Override) IsZero() bool {
	return !o.set
}

func (o Override) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Override) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Override{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Set(v)
	return nil
}

func (o Override) String() string {
	if !o.set {
		return "default"
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}
