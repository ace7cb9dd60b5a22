package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// User cuenta que puede obtener tokens para las acciones de escritura.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // admin, staff, customer
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
