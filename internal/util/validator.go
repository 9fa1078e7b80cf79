package util

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// githubHandle matches GitHub user names: alphanumerics and single hyphens,
// neither leading nor trailing, at most 39 characters.
var githubHandle = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("githubhandle", githubHandleValid)
	_ = validate.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)

	return validate
}

func IsGitHubHandle(s string) bool {
	return len(s) <= 39 && githubHandle.MatchString(s)
}

func githubHandleValid(fl validator.FieldLevel) bool {
	return IsGitHubHandle(fl.Field().String())
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	for _, v := range strings.Fields(strings.ToLower(fl.Param())) {
		if val == v {
			return true
		}
	}
	return false
}
