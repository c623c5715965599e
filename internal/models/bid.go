package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is a price offer against an auction. Rows are hard-deleted so the
// per-auction maximum always reflects live records only.
type Bid struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	AuctionID string          `json:"auction" gorm:"type:varchar(36);index;<-:create"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2)" validate:"required"`
	BidderID  string          `json:"bidder" gorm:"type:varchar(36);index;<-:create"`
	CreatedAt time.Time       `json:"creation_date" gorm:"<-:create"`
}
