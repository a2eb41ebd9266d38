package service

import "errors"

// Client-input failures of the comment pipeline. Every one is terminal
// for its request; the error text surfaces verbatim as the response
// body's "error" field, so the wording is part of the API contract.
var (
	ErrTooManyRequests       = errors.New("Too many requests, please try again later.")
	ErrInvalidPayload        = errors.New("Invalid payload")
	ErrMissingRequiredFields = errors.New("Missing required fields")
	ErrMissingSlug           = errors.New("Missing slug")
	ErrInvalidEmail          = errors.New("Invalid email")
	ErrPostNotFound          = errors.New("Post not found")

	// Moderation-path failures.
	ErrCommentNotFound = errors.New("Comment not found")
	ErrInvalidStatus   = errors.New("Invalid status")
	ErrPostRequired    = errors.New("Post is required when scope is post")
)
