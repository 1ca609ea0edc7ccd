package models

// Subscriber is a newsletter signup
type Subscriber struct {
	ID    string `json:"id" bson:"id,omitempty"`
	Email string `json:"email" bson:"email"`
}

func (s *Subscriber) Normalize() error {
	return nil
}

type SubscriberDeleteRequest struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

type SubscriberMailRequest struct {
	IDs     []string `json:"ids" validate:"required,min=1"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
