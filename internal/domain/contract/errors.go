package contract

import "errors"

// Sentinel errors shared between repositories and usecases.
var (
	// ErrReactionConflict means a toggle step lost a race with a concurrent
	// toggle on the same (user, post) pair. The whole toggle is retryable.
	ErrReactionConflict = errors.New("reaction toggle lost a concurrent update race")
	ErrReactionNotFound = errors.New("reaction not found")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenNotFound     = errors.New("token not found")
)
