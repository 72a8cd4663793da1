package session

import (
	"encoding/json"
	"strconv"
)

// User is the authenticated identity returned by the API.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// UnmarshalJSON accepts is_admin as a boolean, a 0/1 number or a numeric string.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      int64           `json:"id"`
		Name    string          `json:"name"`
		Email   string          `json:"email"`
		IsAdmin json.RawMessage `json:"is_admin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.ID = raw.ID
	u.Name = raw.Name
	u.Email = raw.Email
	u.IsAdmin = parseFlag(raw.IsAdmin)
	return nil
}

func parseFlag(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseBool(s)
		return err == nil && v
	}

	return false
}

// Landing paths after a successful login.
const (
	AdminLandingPath    = "/admin/products"
	CustomerLandingPath = "/products"
)

// LandingPath returns where the caller should navigate after authenticating u.
func LandingPath(u User) string {
	if u.IsAdmin {
		return AdminLandingPath
	}
	return CustomerLandingPath
}
