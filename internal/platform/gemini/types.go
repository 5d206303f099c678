package gemini

// promptProfile is one profile flattened for template rendering.
type promptProfile struct {
	Age       int
	Gender    string
	City      string
	Country   string
	Interests string
	Goal      string
}

// promptData is the data passed to the prompt template.
type promptData struct {
	ProfileA promptProfile
	ProfileB promptProfile
}

// verdict is the expected structure of the model's response.
type verdict struct {
	Score float32 `json:"Score"`
}
