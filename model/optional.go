package model

import "encoding/json"

// Optional JSON fields for partial updates. Set reports whether the key was
// present in the payload at all; Valid reports whether it carried a non-null
// value. A key that is absent leaves the record field unchanged; an explicit
// null clears a nullable field.

// OptionalString is a string field that may be absent, null or set.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalInt is an integer field that may be absent, null or set.
type OptionalInt struct {
	Set   bool
	Valid bool
	Value int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalBool is a boolean field that may be absent, null or set.
type OptionalBool struct {
	Set   bool
	Valid bool
	Value bool
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
