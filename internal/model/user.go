package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can bookmark recipes and keep a pantry.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string         `gorm:"size:100;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Bookmark links a user to a saved recipe.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// UserIngredient is a pantry entry. Type mirrors recipe ingredient typing so a
// pantry can seed recommendations directly.
type UserIngredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Type      string    `gorm:"size:10;not null;default:'main'" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserIngredient) TableName() string {
	return "user_ingredients"
}
