package model

// GenerateRequest represents a password generation request.
// A nil Length selects the service default; an explicit 0 yields an empty password.
// Alphabet, when set, takes precedence over IncludeSpecialCharacters.
type GenerateRequest struct {
	Length                   *int   `json:"length"`
	IncludeSpecialCharacters bool   `json:"include_special_characters"`
	Alphabet                 string `json:"alphabet,omitempty"`
	Count                    int    `json:"count,omitempty"`
}

// GenerateResponse represents a password generation response.
// Passwords is only filled for batch requests; Password always holds the first result.
type GenerateResponse struct {
	Password     string   `json:"password"`
	Passwords    []string `json:"passwords,omitempty"`
	Length       int      `json:"length"`
	Alphabet     string   `json:"alphabet"`
	AlphabetSize int      `json:"alphabet_size"`
}

// AlphabetInfo describes one selectable alphabet.
type AlphabetInfo struct {
	Name       string `json:"name"`
	Size       int    `json:"size"`
	Characters string `json:"characters"`
}

// OptionsResponse lists what a generation request may ask for.
type OptionsResponse struct {
	PresetLengths []int          `json:"preset_lengths"`
	DefaultLength int            `json:"default_length"`
	MaxLength     int            `json:"max_length"`
	MaxCount      int            `json:"max_count"`
	Alphabets     []AlphabetInfo `json:"alphabets"`
}
