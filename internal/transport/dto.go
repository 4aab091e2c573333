package transport

type RootResponse struct {
	APIVersion  string `json:"api_version"`
	Environment string `json:"environment"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       uint   `json:"user_id"`
}

type CreateTrackerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
