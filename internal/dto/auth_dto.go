package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by login, register and the Google sign-in
// callback. The refresh token travels only in the Refresh cookie.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	RoleName    string `json:"roleName"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
