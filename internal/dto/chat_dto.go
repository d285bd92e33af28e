package dto

type SendMessageRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
