// Package gemini implements the scoring.Scorer interface using Google's
// Gemini API. Both profiles are rendered into a matchmaker prompt from a
// configurable template file, and the model's structured verdict is decoded
// into a compatibility score.
package gemini
