package ports

// PasswordHasher derives and checks salted one-way password digests. The
// digest is self-describing: salt and cost travel inside it, so Verify needs
// no side channel. Hash is deliberately CPU-expensive; callers on a hot path
// should expect it to take tens of milliseconds.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. It never returns an
	// error: a mismatch or an unparseable digest is simply false.
	Verify(plaintext, digest string) bool
}
