package routes

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"translated gorm error", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm error", fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), true},
		{"raw postgres message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`), true},
		{"sqlstate only", errors.New("SQLSTATE 23505"), true},
		{"unrelated error", errors.New("connection refused"), false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateKey(tc.err); got != tc.want {
				t.Fatalf("isDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
