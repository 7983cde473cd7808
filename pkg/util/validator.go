package util

import (
	"regexp"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// IsValidEmail 验证邮箱格式是否正确
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUsername reports whether username is 3-20 letters, digits or underscores
// IsValidUsername 验证用户名格式：字母、数字、下划线，长度3-20
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
