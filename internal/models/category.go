package models

import "gorm.io/gorm"

// Category groups auctions. Deleting a category removes its auctions and
// all of their dependent records in one transaction (see the repository).
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=1,max=50"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
