// internal/types/models.go
package types

type Session struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

type SavedImage struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

type GenerationRequest struct {
	GenerationType string `json:"generationType"`
	EventName      string `json:"eventName"`
	Theme          string `json:"theme"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	EventType      string `json:"eventType"`
	ExtraPrompt    string `json:"extraPrompt"`
	AspectRatio    string `json:"aspect_ratio"`
}

type GenerationResult struct {
	Href string `json:"href"`
}

const (
	DefaultGenerationType = "poster"
	DefaultAspectRatio    = "3:2"
)

// Normalize fills in the defaults the generation service expects for
// fields the user left blank.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.GenerationType == "" {
		r.GenerationType = DefaultGenerationType
	}
	if r.AspectRatio == "" {
		r.AspectRatio = DefaultAspectRatio
	}
	return r
}
