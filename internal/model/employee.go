package model

import "time"

// Employee represents an application user record as stored in the
// `employees` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the employee.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Batch        – attendance cohort, 1 or 2.  Immutable after creation.
//  Role         – name of the role (user or admin).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Employee struct {
	ID           uint64    // employees.id
	Name         string    // employees.name
	Email        string    // employees.email
	PasswordHash string    // employees.password_hash
	Batch        int       // employees.batch (1 or 2)
	Role         string    // employees.role
	CreatedAt    time.Time // employees.created_at
	UpdatedAt    time.Time // employees.updated_at
}

// Employee roles.  RoleAdmin unlocks the /v1/admin endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to an employee and contains metadata for
// expiry and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID         – primary key identifier.
//  EmployeeID – owner of the token.
//  TokenHash  – SHA-256 hex digest of the token value.
//  ExpiresAt  – expiration timestamp of the token.
//  RevokedAt  – when the token was revoked (null if still active).
//  CreatedAt  – timestamp of creation.
type RefreshToken struct {
	ID         uint64     // refresh_tokens.id
	EmployeeID uint64     // refresh_tokens.employee_id
	TokenHash  string     // refresh_tokens.token_hash
	ExpiresAt  time.Time  // refresh_tokens.expires_at
	RevokedAt  *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt  time.Time  // refresh_tokens.created_at
}
