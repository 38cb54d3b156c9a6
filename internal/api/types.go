package api

// SubmitRecipeRequest starts a cooking session from a recipe payload.
type SubmitRecipeRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Ingredients string `json:"ingredients"`
}

// AskRequest is a free-form utterance within a session.
type AskRequest struct {
	Utterance string `json:"utterance" binding:"required"`
}

// RecommendRequest asks for recipes matching the given ingredients. Main and
// sub lists are optional; main_weight defaults server-side to 2.0.
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`
	Main        []string `json:"main_ingredients"`
	Sub         []string `json:"sub_ingredients"`
	MainWeight  float64  `json:"main_weight"`
	TopK        int      `json:"top_k"`
}

// RegisterRequest creates a user account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PantryRequest replaces the caller's pantry ingredients.
type PantryRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// SpeakRequest synthesizes speech for a text.
type SpeakRequest struct {
	Text string `json:"text" binding:"required"`
}
