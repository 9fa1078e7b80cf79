package model

type LookupRequest struct {
	Username string `json:"username" validate:"required,githubhandle"`
}
