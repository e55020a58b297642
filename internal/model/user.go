package model

import "time"

// Role values stored in users.role and carried in the JWT role claim.
// Guests are simply unauthenticated callers and never appear in the
// users table.
const (
	RoleAdmin     = "ADMIN"
	RoleSuperUser = "SUPER_USER"
	RoleUser      = "USER"
)

// User represents an application user. UserName is the unique login
// identifier. BonusPoints grows by one for every ticket the user buys.
// PasswordHash is never serialized.
//
// Fields:
//  ID           – primary key identifier.
//  UserName     – unique login name.
//  FirstName    – given name.
//  LastName     – family name.
//  Role         – one of the Role* constants.
//  BonusPoints  – loyalty counter, one point per purchased ticket.
//  PasswordHash – bcrypt hash of the password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`           // users.id
	UserName     string    `json:"user_name"`    // users.user_name
	FirstName    string    `json:"first_name"`   // users.first_name
	LastName     string    `json:"last_name"`    // users.last_name
	Role         string    `json:"role"`         // users.role
	BonusPoints  uint32    `json:"bonus_points"` // users.bonus_points
	PasswordHash string    `json:"-"`            // users.password_hash
	IsActive     bool      `json:"is_active"`    // users.is_active
	CreatedAt    time.Time `json:"created_at"`   // users.created_at
	UpdatedAt    time.Time `json:"updated_at"`   // users.updated_at
}

// RefreshToken models a row in refresh_tokens. Only the SHA-256 hash of
// the issued token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the raw token.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (nil while active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
