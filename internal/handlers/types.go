package handlers

// CreateShortLinkRequest is the request body for shortening an arbitrary URL.
type CreateShortLinkRequest struct {
	Body struct {
		URL string `doc:"Absolute URL to shorten" example:"https://example.com/recipes/42/" json:"url,omitempty"`
	}
}

// RecipeShortLinkRequest identifies the recipe whose page should be shortened.
type RecipeShortLinkRequest struct {
	ID int64 `doc:"Recipe ID" example:"42" minimum:"1" path:"id"`
}

// ShortLinkResponse carries the absolute short link.
type ShortLinkResponse struct {
	Body struct {
		ShortLink string `doc:"The absolute short link" example:"https://example.com/s/aB3dE9" json:"short-link"`
	}
}

// RedirectRequest is the request for following a short link.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3dE9" path:"code"`
}

// RedirectResponse sends the client to the stored target.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The target URL" header:"Location"`
}
