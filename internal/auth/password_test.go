package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	ps := NewPasswordServiceForTest(bcrypt.MinCost)

	hash, err := ps.Hash("hunter2-but-longer")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "hunter2-but-longer" || !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Hash() = %q, want a bcrypt hash", hash)
	}

	if err := ps.Verify(hash, "hunter2-but-longer"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
	if err := ps.Verify(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify() with wrong password = %v, want ErrPasswordMismatch", err)
	}
}

func TestHash_SaltsEachCall(t *testing.T) {
	ps := NewPasswordServiceForTest(bcrypt.MinCost)

	a, _ := ps.Hash("same-password")
	b, _ := ps.Hash("same-password")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := NewPasswordServiceForTest(bcrypt.MinCost)

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() should reject passwords over 72 bytes")
	}
	if _, err := ps.Hash(strings.Repeat("a", 72)); err != nil {
		t.Errorf("Hash() of exactly 72 bytes: %v", err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	ps := NewPasswordService()

	err := ps.Verify("not-a-bcrypt-hash", "x")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify() = %v, want a non-mismatch error", err)
	}
}
