package models

import (
	"encoding/json"
	"errors"
)

// UserRecord is the identity returned by the current-user endpoint.
// It is immutable once fetched: re-validation replaces the whole record.
// Profile keeps any extra server fields as raw JSON without interpreting them.
type UserRecord struct {
	ID       int64
	Username string
	Profile  map[string]json.RawMessage
}

// UnmarshalJSON requires id and username to be present; everything else
// lands in Profile untouched.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var known struct {
		ID       *int64  `json:"id"`
		Username *string `json:"username"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	if known.ID == nil || known.Username == nil {
		return errors.New("user record missing id or username")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "id")
	delete(raw, "username")

	u.ID = *known.ID
	u.Username = *known.Username
	u.Profile = raw
	return nil
}
