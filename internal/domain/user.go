package domain

// Account is the single local user record.
// Password is only read from records written before hashing was introduced.
type Account struct {
	Email    string `json:"email"`
	Hash     string `json:"passwordHash,omitempty"`
	Password string `json:"password,omitempty"`
}
