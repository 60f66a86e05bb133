package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username       string  `json:"username" validate:"omitempty,min=3,max=50"`
	Bio            *string `json:"bio" validate:"omitempty,max=1000"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=500"`
	IsAnonymous    *bool   `json:"isAnonymous"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// AuthorSummary is the projection of an account attached to posts and
// comments. It is nil in responses when the content is anonymous and the
// viewer is not the author.
type AuthorSummary struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
	IsAnonymous    bool      `json:"isAnonymous"`
}
