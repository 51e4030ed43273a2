package auth

// Session is the authenticated identity carried by an access token. It is
// passed explicitly into services rather than read from ambient state.
type Session struct {
	UserID  string  `json:"user_id"`
	Email   string  `json:"email"`
	StaffID *string `json:"staff_id,omitempty"`
}

// HasStaff reports whether the session is linked to a staff profile.
func (s Session) HasStaff() bool {
	return s.StaffID != nil && *s.StaffID != ""
}
