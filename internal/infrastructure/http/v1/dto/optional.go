package dto

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one sent as
// explicit null. Partial updates need the difference for nullable columns:
// an absent field keeps the stored value, null clears it.
type Optional[T any] struct {
	Present bool
	Valid   bool // false when the caller sent null
	Value   T
}

// UnmarshalJSON runs only for fields present in the body, so Present flips
// exactly when the caller sent the field.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
