package dto

// TokenRequest credenciales para POST /api/token/.
type TokenRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse par access/refresh.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest entrada para POST /api/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	Access string `json:"access"`
}
