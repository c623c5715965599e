package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Auction represents a listing open to bids until its closing date.
// CreatedAt is immutable; closing-date rules are enforced in the service
// against this original creation time.
type Auction struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title        string          `json:"title" gorm:"type:varchar(150)" validate:"required,max=150"`
	Description  string          `json:"description" gorm:"type:text" validate:"required"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(10,2)" validate:"required"`
	Stock        int             `json:"stock" validate:"required,gte=1"`
	Rating       int             `json:"rating" gorm:"default:1" validate:"omitempty,gte=1,lte=5"` // seed rating supplied at creation
	Brand        string          `json:"brand" gorm:"type:varchar(100)" validate:"required,max=100"`
	CategoryID   string          `json:"category" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Thumbnail    string          `json:"thumbnail" validate:"required,url"`
	AuctioneerID string          `json:"auctioneer" gorm:"type:varchar(36);index;<-:create"`
	CreatedAt    time.Time       `json:"creation_date" gorm:"<-:create"`
	ClosingDate  time.Time       `json:"closing_date" validate:"required"`
	UpdatedAt    time.Time       `json:"-"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}
