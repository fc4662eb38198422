package response

import "github.com/google/uuid"

type AuthResponse struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Token     string    `json:"token"`
}
