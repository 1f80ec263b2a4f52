package domain

import (
	"encoding/json"
	"strconv"
)

// Branch is one decoded row of the branches table. Code, not ID, is the key
// clients use to reference their branch.
type Branch struct {
	ID      string
	Code    Code
	Name    string
	Address string
}

// RawBranch holds a branches row before coercion.
type RawBranch struct {
	ID      string
	Code    string
	Name    string
	Address string
}

// Code is an integer key that may have failed to parse. An invalid code
// never equals any other code, invalid ones included.
type Code struct {
	Value int
	Valid bool
}

// NewCode returns a valid code.
func NewCode(v int) Code {
	return Code{Value: v, Valid: true}
}

// Equal reports whether both codes are valid and hold the same value.
func (c Code) Equal(other Code) bool {
	return c.Valid && other.Valid && c.Value == other.Value
}

func (c Code) String() string {
	if !c.Valid {
		return "NaN"
	}
	return strconv.Itoa(c.Value)
}

// MarshalJSON encodes an invalid code as null.
func (c Code) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts a number or null.
func (c *Code) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Code{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NewCode(v)
	return nil
}
