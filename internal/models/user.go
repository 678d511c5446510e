package models

import "time"

// UserRole is the role column of the users table. Registration only ever
// produces students; the column is kept for parity with the schema.
type UserRole string

const (
	RoleStudent UserRole = "student"
)

// AccountStatus gates login visibility. "approved" is the only value the
// registration flow writes.
type AccountStatus string

const (
	AccountApproved AccountStatus = "approved"
)

// User represents an application user stored in the users table.
type User struct {
	ID            string        `db:"id" json:"id"`
	UCCMSNumber   string        `db:"uccms_number" json:"uccms_number"`
	FullName      string        `db:"full_name" json:"full_name"`
	PasswordHash  string        `db:"password_hash" json:"-"`
	Role          UserRole      `db:"role" json:"role"`
	AccountStatus AccountStatus `db:"account_status" json:"account_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
