package dto

import "github.com/google/uuid"

type SendPartnerRequest struct {
	Email string `json:"email"`
}

type SendPartnerResponse struct {
	Message     string `json:"message"`
	PartnerName string `json:"partner_name"`
}

// PartnerActionRequest names the requester being accepted or rejected.
type PartnerActionRequest struct {
	PartnerID uuid.UUID `json:"partner_id"`
}

type PendingRequestResponse struct {
	FromID    uuid.UUID `json:"from_id"`
	FromName  string    `json:"from_name"`
	FromEmail string    `json:"from_email"`
}

type PendingRequestsResponse struct {
	Requests []PendingRequestResponse `json:"requests"`
}

// PartnerDetailsResponse carries a nil Partner when the user is unpaired.
type PartnerDetailsResponse struct {
	Partner *UserResponse `json:"partner"`
}

type ReconcileResponse struct {
	Repaired []uuid.UUID `json:"repaired"`
	Count    int         `json:"count"`
}
