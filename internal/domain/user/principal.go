package user

// Principal is the verified caller as reported by the identity provider.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
}

// Name returns the display name, falling back to the e-mail address.
func (p Principal) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}
