package domain

// Roles recognised by the admin gate. An unauthenticated visitor, or a user
// with no user_roles row, is treated as a customer.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"` // resolved from user_roles on lookup
}

// IsStaff reports whether the user may see the admin area at all.
func (u *User) IsStaff() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleStaff)
}

// IsAdmin reports whether the user may reach settings and staff management.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
