package models

import "time"

// Rating is a 1-5 score a user may submit once per auction. The composite
// unique index backs the one-rating-per-user invariant at the storage level.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Value     int       `json:"value" validate:"required,gte=1,lte=5"`
	UserID    string    `json:"user" gorm:"type:varchar(36);uniqueIndex:idx_ratings_user_auction;<-:create"`
	AuctionID string    `json:"auction" gorm:"type:varchar(36);uniqueIndex:idx_ratings_user_auction;<-:create"`
	CreatedAt time.Time `json:"created_at"`
}
