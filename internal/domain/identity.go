package domain

type User struct {
	ID    string
	Name  string
	Email string
}

// Session is the persisted login record.
type Session struct {
	User  User
	Token string
}

// Identity is the part of a session the cart needs.
type Identity struct {
	UserID string
	Token  string
}

func GuestIdentity() Identity {
	return Identity{UserID: GuestUserID}
}

func (i Identity) IsGuest() bool {
	return IsGuest(i.UserID)
}

func (s Session) Identity() Identity {
	if s.User.ID == "" {
		return GuestIdentity()
	}
	return Identity{UserID: s.User.ID, Token: s.Token}
}
