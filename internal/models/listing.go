package models

import (
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// PaymentDetails holds the verification outcome for a listing. GiftCardNumber
// only ever carries the last 4 characters of the submitted number; the full
// number is never persisted anywhere.
type PaymentDetails struct {
	GiftCardNumber string `json:"gift_card_number"`
	CardName       string `json:"card_name"`
	Amount         string `json:"amount"`
	Verified       bool   `json:"verified"`
}

type Listing struct {
	ID               string         `json:"id"`
	FullName         string         `json:"full_name"`
	Email            string         `json:"email"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ImageURL         *string        `json:"image_url"`
	PaymentDetails   PaymentDetails `json:"payment_details"`
	Status           string         `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	VerificationDate time.Time      `json:"verification_date"`
}

type CreateListingRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	GiftCardNumber string `json:"gift_card_number"`
	CardName       string `json:"card_name"`
	Amount         string `json:"amount"`
}

type ModerationRequest struct {
	Action string `json:"action"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type ListingStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
