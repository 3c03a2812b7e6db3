package dto

// LoginRequest represents professor login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"a.morrow@miami.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse carries the bearer token and the authenticated professor.
// The professor payload never contains the password hash.
type LoginResponse struct {
	AccessToken string            `json:"accessToken"`
	TokenType   string            `json:"tokenType" example:"Bearer"`
	ExpiresIn   int               `json:"expiresIn" example:"3600"` // Seconds
	Professor   ProfessorResponse `json:"professor"`
}
