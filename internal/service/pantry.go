package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cookduck/backend/internal/ingredient"
	"github.com/cookduck/backend/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// PantryService manages a user's bookmarks and pantry ingredients.
type PantryService struct {
	db *gorm.DB
}

// NewPantryService creates a PantryService on the given database.
func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// AddBookmark saves a recipe for a user. Bookmarking twice is a no-op.
func (s *PantryService) AddBookmark(ctx context.Context, userID, recipeID uuid.UUID) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	var existing model.Bookmark
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(&model.Bookmark{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

// RemoveBookmark deletes a bookmark if present.
func (s *PantryService) RemoveBookmark(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Bookmark{}).Error
}

// ListBookmarks returns the user's saved recipes.
func (s *PantryService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN bookmarks ON bookmarks.recipe_id = recipes.id").
		Where("bookmarks.user_id = ?", userID).
		Find(&recipes).Error
	return recipes, err
}

// SetIngredients replaces the user's pantry with the given ingredients,
// normalizing and classifying each one.
func (s *PantryService) SetIngredients(ctx context.Context, userID uuid.UUID, names []string) ([]model.UserIngredient, error) {
	rows := make([]model.UserIngredient, 0, len(names))
	for _, name := range names {
		cleaned := ingredient.Normalize(name)
		typ := "main"
		if ingredient.IsSeasoning(cleaned) {
			typ = "sub"
		}
		rows = append(rows, model.UserIngredient{
			UserID: userID,
			Name:   cleaned,
			Type:   typ,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserIngredient{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListIngredients returns the user's pantry.
func (s *PantryService) ListIngredients(ctx context.Context, userID uuid.UUID) ([]model.UserIngredient, error) {
	var rows []model.UserIngredient
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

// PantryRequest builds a recommendation request from the stored pantry,
// honoring the asserted main/sub typing.
func (s *PantryService) PantryRequest(ctx context.Context, userID uuid.UUID) (RecommendRequest, error) {
	rows, err := s.ListIngredients(ctx, userID)
	if err != nil {
		return RecommendRequest{}, err
	}
	var req RecommendRequest
	for _, row := range rows {
		req.Ingredients = append(req.Ingredients, row.Name)
		if row.Type == "sub" {
			req.Sub = append(req.Sub, row.Name)
		} else {
			req.Main = append(req.Main, row.Name)
		}
	}
	return req, nil
}
