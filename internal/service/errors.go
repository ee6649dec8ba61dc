package service

import "errors"

// Messages are part of the public API: clients display them verbatim.
var (
	ErrMissingFields   = errors.New("Missing or empty fields")
	ErrPasswordTooLong = errors.New("Password is too long")
	ErrUserExists      = errors.New("User already exists")
	ErrInvalidCreds    = errors.New("User not found or wrong password")
	ErrUserNotFound    = errors.New("User not found")
	ErrTweetNotFound   = errors.New("Tweet not found")
	ErrNotTweetAuthor  = errors.New("Tweet can only be deleted by its author")
)
