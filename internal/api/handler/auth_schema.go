package handler

// errorSchema documents the error envelope in the swagger output.
type errorSchema struct {
	Msg string `json:"msg"`
}

type registerRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email"    validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Department string `json:"department"`
	// Role is optional; unknown values are coerced to employee, not rejected.
	Role string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type userResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}
