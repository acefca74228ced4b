package auth

import "golang.org/x/crypto/bcrypt"

// dummyDigest is compared against when no user record exists, so a
// failed login costs the same whether or not the email is known.
var dummyDigest = mustHash("talenthub.dummy.password")

func mustHash(password string) string {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(digest)
}

// HashPassword produces a salted one-way digest of the password.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CompareDummy burns one hash comparison against a throwaway digest.
func CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(password))
}
