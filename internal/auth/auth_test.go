// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestTokenIssueAndVerify(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, expiresAt, err := tm.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if until := time.Until(expiresAt); until < 55*time.Minute || until > time.Hour {
		t.Errorf("expiry %v not about one hour out", expiresAt)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
}

func TestTokenVerifyRejects(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	otherTM, err := NewTokenManager("another-secret-also-32-characters-xx", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	foreign, _, err := otherTM.Issue(1, "mallory")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong signing key", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenExpires(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, _, err := tm.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() after expiry error = %v, want ErrInvalidToken", err)
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Error("NewTokenManager(\"\") = nil error, want error")
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hasher := NewPasswordHasher(10) // lowest sane cost to keep the test fast

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !hasher.Check(hash, "correct horse battery staple") {
		t.Error("Check() = false for correct password")
	}
	if hasher.Check(hash, "wrong password") {
		t.Error("Check() = true for wrong password")
	}
	if hasher.Check("not-a-hash", "anything") {
		t.Error("Check() = true for malformed hash")
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the default rather than failing
	// at hash time.
	hasher := NewPasswordHasher(99)
	if hasher.cost != 12 {
		t.Errorf("cost = %d, want fallback 12", hasher.cost)
	}
}
