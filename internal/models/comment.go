package models

import "time"

// Comment is a titled text note on an auction, one per (user, auction).
// ModifiedAt is maintained server-side on create and update.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title      string    `json:"title" gorm:"type:varchar(50)" validate:"required,max=50"`
	Body       string    `json:"body" gorm:"type:text" validate:"required"`
	UserID     string    `json:"user" gorm:"type:varchar(36);uniqueIndex:idx_comments_user_auction;<-:create"`
	AuctionID  string    `json:"auction" gorm:"type:varchar(36);uniqueIndex:idx_comments_user_auction;<-:create"`
	CreatedAt  time.Time `json:"creation_date" gorm:"<-:create"`
	ModifiedAt time.Time `json:"last_modified"`
}
