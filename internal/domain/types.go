package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID   ID     `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (r RequestContext) Authenticated() bool { return r.UserID > 0 }

func (r RequestContext) IsAdmin() bool { return r.Role == RoleAdmin }

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
