package auctionerrors

import "errors"

// Validation errors (malformed or out-of-range input)
var (
	ErrClosingDateNotFuture = errors.New("closing date must be in the future")
	ErrClosingDateTooSoon   = errors.New("closing date must be at least 15 days after creation")
	ErrNonPositivePrice     = errors.New("price must be greater than 0")
	ErrRatingOutOfRange     = errors.New("rating value must be between 1 and 5")
	ErrSearchTermTooShort   = errors.New("search term must be at least 3 characters")
	ErrNegativePrice        = errors.New("price filter must be a positive number")
	ErrInvalidPriceRange    = errors.New("maximum price must be greater than minimum price")
	ErrNegativeRating       = errors.New("rating filter must be a positive number")
	ErrInvalidInput         = errors.New("invalid input")
)

// Conflict errors (request contradicts current state)
var (
	ErrBidTooLow        = errors.New("bid must be greater than the current highest bid")
	ErrDuplicateRating  = errors.New("user has already rated this auction")
	ErrDuplicateComment = errors.New("user has already commented on this auction")
)

// Not-found errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Permission errors
var (
	ErrForbidden = errors.New("operation not permitted for this user")
)

// Kind classifies an error into the taxonomy the HTTP layer maps to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindPermission
)

var kinds = map[Kind][]error{
	KindValidation: {
		ErrClosingDateNotFuture, ErrClosingDateTooSoon, ErrNonPositivePrice,
		ErrRatingOutOfRange, ErrSearchTermTooShort, ErrNegativePrice,
		ErrInvalidPriceRange, ErrNegativeRating, ErrInvalidInput,
	},
	KindConflict:   {ErrBidTooLow, ErrDuplicateRating, ErrDuplicateComment},
	KindNotFound:   {ErrAuctionNotFound, ErrCategoryNotFound, ErrBidNotFound, ErrRatingNotFound, ErrCommentNotFound, ErrUserNotFound},
	KindPermission: {ErrForbidden},
}

// KindOf returns the taxonomy kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	for kind, sentinels := range kinds {
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return kind
			}
		}
	}
	return KindUnknown
}
