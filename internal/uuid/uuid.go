// Package uuid wraps google/uuid with the binding hook gin needs to
// parse IDs out of URI and form parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that binds from request parameters.
type UUID struct {
	google_uuid.UUID
}

// Nil is the zero UUID, bound from an empty parameter.
var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler so handlers
// can bind ID parameters directly into a UUID field.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
