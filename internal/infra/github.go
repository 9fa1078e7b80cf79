package infra

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/pkg/credentials"
)

func GitHub(conf *appconfig.Config) (*github.Client, error) {
	client := github.NewClient(&http.Client{Timeout: conf.GitHubTimeout})

	if conf.GitHubBaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(conf.GitHubBaseURL, "/") + "/")
		if err != nil {
			log.Error().Err(err).Msg("infra: github: failed to parse base url")
			return nil, errors.Wrap(err, "invalid GitHub base url")
		}
		client.BaseURL = u
	}

	token, err := credentials.Resolve(conf.GitHubToken, conf.GitHubCredentialsFile)
	if err != nil {
		log.Error().Err(err).Msg("infra: github: failed to read credentials")
		return nil, err
	}
	if token == "" {
		log.Warn().
			Str("evt.name", "infra.github.anonymous").
			Msg("no GitHub token configured, requests are made anonymously and are heavily rate limited")
		return client, nil
	}

	return client.WithAuthToken(token), nil
}
