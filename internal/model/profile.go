package model

import "gopkg.in/guregu/null.v3"

// UserProfile is the profile of the looked-up GitHub user, fetched once per query.
type UserProfile struct {
	Login       string      `json:"login"`
	Name        null.String `json:"name"`
	Bio         null.String `json:"bio"`
	Location    null.String `json:"location"`
	AvatarURL   string      `json:"avatarUrl"`
	PageURL     string      `json:"pageUrl"`
	Followers   int         `json:"followers"`
	Following   int         `json:"following"`
	PublicRepos int         `json:"publicRepos"`
}

// DisplayName is the user's name, or the login if the user has not set one.
func (p *UserProfile) DisplayName() string {
	if p.Name.Valid && p.Name.String != "" {
		return p.Name.String
	}
	return p.Login
}

// Person is an entry of the followers and following lists.
type Person struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
	PageURL   string `json:"pageUrl"`
}
