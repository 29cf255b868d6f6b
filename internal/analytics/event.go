package analytics

import "time"

const (
	TopicLinkCreated  = "link.created"
	TopicLinkResolved = "link.resolved"
)

// Source identifies which endpoint minted a link.
type Source string

const (
	SourceAPI    Source = "api"
	SourceRecipe Source = "recipe"
)

// LinkCreatedEvent is emitted when a new short code is minted.
type LinkCreatedEvent struct {
	Code      string    `json:"code"`
	FullURL   string    `json:"fullUrl"`
	Source    Source    `json:"source"`
	RecipeID  int64     `json:"recipeId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkResolvedEvent is emitted when a short link is followed.
type LinkResolvedEvent struct {
	Code       string    `json:"code"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
