package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe is a stored recipe row. The main/sub ingredient columns hold
// comma-joined canonical names; Embedding is filled offline by the indexer.
type Recipe struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	IngredientsRaw  string          `gorm:"type:text" json:"ingredients"`
	MainIngredients string          `gorm:"type:text" json:"main_ingredients"`
	SubIngredients  string          `gorm:"type:text" json:"sub_ingredients"`
	Content         string          `gorm:"type:text;not null" json:"content"`
	Embedding       pgvector.Vector `gorm:"type:vector(768)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MainList returns the recipe's main ingredients as a slice.
func (r *Recipe) MainList() []string {
	return splitIngredients(r.MainIngredients)
}

// SubList returns the recipe's sub ingredients as a slice.
func (r *Recipe) SubList() []string {
	return splitIngredients(r.SubIngredients)
}

// AllList returns the raw ingredient column as a slice.
func (r *Recipe) AllList() []string {
	return splitIngredients(r.IngredientsRaw)
}

func splitIngredients(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RecipeIngredient is one row of the per-recipe ingredient table; Type is
// either "main" or "sub" and, where present, is the asserted source of truth
// for classification.
type RecipeIngredient struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RecipeID       uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientName string    `gorm:"size:100;not null" json:"ingredient_name"`
	IngredientType string    `gorm:"size:10;not null;default:'main'" json:"ingredient_type"`
	CreatedAt      time.Time `json:"created_at"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
