package handler

import (
	"time"

	identitydomain "swipe-go/internal/domain/identity"
)

type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type agentResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type clientResponse struct {
	ID                 int64          `json:"id"`
	User               userResponse   `json:"user"`
	NotificationStatus string         `json:"notification_status"`
	Agent              *agentResponse `json:"agent"`
}

type profileResponse struct {
	ID   int64        `json:"id"`
	User userResponse `json:"user"`
}

type userUpdateRequest struct {
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Password    *string `json:"password"`
	Password2   *string `json:"password2"`
}

func (req userUpdateRequest) toInput() identitydomain.UserInput {
	return identitydomain.UserInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Password2:   req.Password2,
	}
}

func toUserResponse(user identitydomain.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

func toClientResponse(client identitydomain.Client) clientResponse {
	response := clientResponse{
		ID:                 client.ID,
		User:               toUserResponse(client.User),
		NotificationStatus: client.NotificationStatus,
	}
	if client.Agent != nil {
		response.Agent = &agentResponse{
			ID:          client.Agent.ID,
			FirstName:   client.Agent.FirstName,
			LastName:    client.Agent.LastName,
			Email:       client.Agent.Email,
			PhoneNumber: client.Agent.PhoneNumber,
		}
	}
	return response
}

func toDeveloperResponse(developer identitydomain.Developer) profileResponse {
	return profileResponse{ID: developer.ID, User: toUserResponse(developer.User)}
}

func toNotaryResponse(notary identitydomain.Notary) profileResponse {
	return profileResponse{ID: notary.ID, User: toUserResponse(notary.User)}
}
