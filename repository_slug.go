package releasefeed

import (
	"strings"
)

// DefaultRepository is the repository served when none is configured
const DefaultRepository = "maxisme/notifi"

type RepositorySlug struct {
	owner string
	repo  string
}

// Repository interface
var _ Repository = RepositorySlug{}

// ParseSlug is used to take a string "owner/repo" to make a RepositorySlug.
// An invalid slug is detected later by GetSlug.
func ParseSlug(slug string) RepositorySlug {
	var owner, repo string
	couple := strings.Split(strings.TrimSpace(slug), "/")
	if len(couple) != 2 {
		// give it another try
		couple = strings.Split(slug, "%2F")
	}
	if len(couple) == 2 {
		owner = couple[0]
		repo = couple[1]
	}
	return RepositorySlug{
		owner: owner,
		repo:  repo,
	}
}

// NewRepositorySlug creates a RepositorySlug from owner and repo parameters
func NewRepositorySlug(owner, repo string) RepositorySlug {
	return RepositorySlug{
		owner: owner,
		repo:  repo,
	}
}

func (r RepositorySlug) GetSlug() (string, string, error) {
	if r.owner == "" && r.repo == "" {
		return "", "", ErrInvalidSlug
	}
	if r.owner == "" {
		return r.owner, r.repo, ErrIncorrectParameterOwner
	}
	if r.repo == "" {
		return r.owner, r.repo, ErrIncorrectParameterRepo
	}
	return r.owner, r.repo, nil
}

// String returns "owner/repo", or an empty string for an invalid slug
func (r RepositorySlug) String() string {
	if _, _, err := r.GetSlug(); err != nil {
		return ""
	}
	return r.owner + "/" + r.repo
}
