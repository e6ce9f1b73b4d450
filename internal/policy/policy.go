// Package policy holds the pure input predicates checked before any store
// mutation.
package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 7
	MaxBioLength      = 280
	MaxDrinkName      = 32
	MaxCommentBody    = 140
	MaxUsername       = 80
	MaxEmail          = 128
	MaxGender         = 16
)

// IsSecurePassword requires an upper-case letter, a lower-case letter, a
// digit and at least MinPasswordLength characters.
func IsSecurePassword(password string) bool {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit && utf8.RuneCountInString(password) >= MinPasswordLength
}

// EmailPolicy decides which addresses may register.
type EmailPolicy interface {
	Allowed(email string) bool
}

// DomainSuffixPolicy accepts addresses ending in one of Suffixes.
type DomainSuffixPolicy struct {
	Suffixes []string
}

func NewDomainSuffixPolicy(suffixes ...string) DomainSuffixPolicy {
	return DomainSuffixPolicy{Suffixes: suffixes}
}

func (p DomainSuffixPolicy) Allowed(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return false
	}
	for _, s := range p.Suffixes {
		if s != "" && strings.HasSuffix(email, s) {
			return true
		}
	}
	return false
}

// WithinLimit reports whether s has at most max characters.
func WithinLimit(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}
