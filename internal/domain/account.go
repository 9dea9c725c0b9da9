package domain

import "strings"

// Account holds a registered user's credentials and contact email.
// Username keeps the casing the user typed at registration; the
// credential store keys accounts by the lower-cased form.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Key returns the case-insensitive lookup key for the account.
func (a Account) Key() string {
	return strings.ToLower(a.Username)
}
