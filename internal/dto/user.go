package dto

import "github.com/yukikurage/task-list-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	Email string `json:"email"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{Email: user.Email}
}

// ToAuthResponse pairs a user with a freshly issued token
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		Email: user.Email,
		Token: token,
	}
}
