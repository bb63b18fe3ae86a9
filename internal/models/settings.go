package models

// SystemSettings is the single global configuration record. It is stored as
// one document under a fixed key and passed explicitly to every call site
// that needs it; nothing reads it ambiently.
type SystemSettings struct {
	RestrictionEnabled bool `json:"enableMcqUnlockRestriction"`
	DefaultVideoCost   int  `json:"defaultVideoCost"`
	DefaultPdfCost     int  `json:"defaultPdfCost"`
	McqTestCost        int  `json:"mcqTestCost"`
	DefaultCredits     int  `json:"defaultCredits"`
}

// DefaultSettings mirrors the values the views assume when no settings
// record has ever been saved.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		RestrictionEnabled: true,
		DefaultVideoCost:   5,
		DefaultPdfCost:     5,
		McqTestCost:        2,
		DefaultCredits:     10,
	}
}
