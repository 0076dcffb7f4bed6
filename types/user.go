package types

// Role is a coarse authorization tag attached to a user account.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user. Immutable after creation.
	ID int `json:"id"`

	// FirstName and LastName form the user's display name.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username"`

	// Email is the user's email address.
	Email string `json:"email"`

	// Roles lists the authorization tags granted to the account.
	// Non-empty for any authenticated user.
	Roles []Role `json:"roles"`

	// ProfilePicture is a reference to the user's avatar, if one was
	// uploaded.
	ProfilePicture string `json:"profilePicture,omitempty"`

	// CurrentInstitute and Country are optional profile fields.
	CurrentInstitute string `json:"currentInstitute,omitempty"`
	Country          string `json:"country,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt DateTime `json:"createdAt"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt DateTime `json:"updatedAt"`
}

// HasRole reports whether the user's role set contains r.
func (u User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Credentials is the transient login input pair. It is never persisted
// beyond the call that consumes it.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Roles     []Role `json:"roles"`
}

// ProfileUpdate carries the editable profile fields. Password fields are
// optional; both must be set to change the password.
type ProfileUpdate struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	CurrentInstitute string `json:"currentInstitute,omitempty"`
	Country          string `json:"country,omitempty"`
	CurrentPassword  string `json:"currentPassword,omitempty"`
	NewPassword      string `json:"newPassword,omitempty"`
}
