package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotLoggedIn      = errors.New("login required: pass --user and --password")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoJobDescription = errors.New("no job description given: use --jd, --jd-text or --jd-url")
	ErrNoResumes        = errors.New("no resume files given")
)
