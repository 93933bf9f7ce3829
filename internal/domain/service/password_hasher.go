package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored credential. The
	// stored value may be a hash or a legacy plaintext record; both are
	// accepted.
	Check(password, stored string) bool

	// IsHashed reports whether the stored credential is already in hashed
	// form, distinguishable by its fixed prefix.
	IsHashed(stored string) bool
}
