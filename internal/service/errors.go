package service

import "errors"

// Error taxonomy surfaced to the API layer.
var (
	// ErrMissingRecipeData rejects a recipe submission without title or content.
	ErrMissingRecipeData = errors.New("recipe title and content are required")

	// ErrSegmentationFailed means the recipe text yielded no usable steps.
	ErrSegmentationFailed = errors.New("could not parse recipe steps")

	// ErrSessionNotFound means the session id has no live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrExternalService wraps failures of the STT/TTS/LLM/embedding
	// collaborators. The turn fails; the session stays alive.
	ErrExternalService = errors.New("external service failure")

	// ErrTranscription is a speech-to-text failure.
	ErrTranscription = errors.New("transcription failed")

	// ErrSynthesis is a text-to-speech failure.
	ErrSynthesis = errors.New("speech synthesis failed")

	// ErrEmptyIngredients rejects a recommendation request with no ingredients.
	ErrEmptyIngredients = errors.New("at least one ingredient is required")
)
