// Package password provides bcrypt-based password hashing and verification.
//
// The zero-value cost uses the bcrypt default. A custom cost can be set via
// WithCost:
//
//	hasher := password.New(password.WithCost(12))
//	hash, err := hasher.Hash("secret")
//	if err := hasher.Verify(hash, "secret"); err != nil {
//		// wrong password
//	}
package password
