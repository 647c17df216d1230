package Models

// Session is the identity decoded from the signed session cookie. The
// middleware builds it once per request; handlers and services only ever see
// this value, never the cookie itself.
type Session struct {
	UserID     uint   `json:"userId"`
	UserName   string `json:"userName"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

func (s Session) IsAdmin() bool {
	return s.IsLoggedIn && s.Role == RoleAdmin
}
