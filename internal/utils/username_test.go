package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9]+\d{2,4}$`)

func TestUsernameFromFullName(t *testing.T) {
	username := UsernameFromFullName("Alex Johnson")
	assert.True(t, usernamePattern.MatchString(username), username)
	assert.Contains(t, username, "alexjohnson")
}

func TestUsernameFromFullNameTransliteratesHan(t *testing.T) {
	username := UsernameFromFullName("张伟")
	assert.Contains(t, username, "zhangwei")
}

func TestUsernameFromFullNameDropsSymbols(t *testing.T) {
	username := UsernameFromFullName("Anne-Marie O'Neil")
	assert.Contains(t, username, "annemarieoneil")
}

func TestUsernameFromFullNameFallback(t *testing.T) {
	username := UsernameFromFullName("!!!")
	assert.Contains(t, username, "employee")
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		assert.Regexp(t, `^\d{6}$`, otp)
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, password, 12)
	assert.NotEqual(t, password, GenerateRandomPassword(12))
}
