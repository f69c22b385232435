package types

import "time"

// Session is the locally simulated authenticated identity.
type Session struct {
	Username    string    `json:"username"`
	Token       string    `json:"token"`
	DisplayName string    `json:"displayName"`
	LoggedInAt  time.Time `json:"loggedInAt"`
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
