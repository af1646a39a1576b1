package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"giftmarketBack/internal/models"
	"giftmarketBack/internal/repositories"
	"giftmarketBack/internal/storage"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ImageUpload is an optional image attached to a listing creation.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// ListingService owns the listing lifecycle: creation with payment
// verification, moderation transitions, the public feed and stats.
type ListingService struct {
	ListingRepo *repositories.ListingRepository
	Payments    *PaymentService
	Images      storage.ImageStore
}

// CreateListing validates the form, verifies payment, stores the image when
// its extension is allowed (otherwise the image is silently dropped) and
// appends the new Pending listing to the store.
func (s *ListingService) CreateListing(ctx context.Context, req models.CreateListingRequest, image *ImageUpload) (models.Listing, error) {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", req.FullName},
		{"email", req.Email},
		{"title", req.Title},
		{"description", req.Description},
		{"gift_card_number", req.GiftCardNumber},
		{"card_name", req.CardName},
		{"amount", req.Amount},
	}
	for _, field := range required {
		if field.value == "" {
			return models.Listing{}, &models.MissingFieldError{Field: field.name}
		}
	}

	verified, reason := s.Payments.VerifyPayment(req.GiftCardNumber, req.CardName, req.Amount)
	if !verified {
		return models.Listing{}, &models.PaymentError{Reason: reason}
	}

	var imageURL *string
	if image != nil && allowedImageExtensions[strings.ToLower(filepath.Ext(image.Filename))] {
		name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFilename(image.Filename))
		url, err := s.Images.Save(ctx, name, image.Reader)
		if err != nil {
			return models.Listing{}, err
		}
		imageURL = &url
	}

	now := time.Now()
	listing := models.Listing{
		ID:          uuid.New().String(),
		FullName:    req.FullName,
		Email:       req.Email,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		PaymentDetails: models.PaymentDetails{
			GiftCardNumber: lastFour(req.GiftCardNumber),
			CardName:       req.CardName,
			Amount:         req.Amount,
			Verified:       verified,
		},
		Status:           models.StatusPending,
		CreatedAt:        now,
		VerificationDate: now.Add(24 * time.Hour),
	}

	err := s.ListingRepo.Update(ctx, func(listings []models.Listing) ([]models.Listing, error) {
		return append(listings, listing), nil
	})
	if err != nil {
		if imageURL != nil {
			// the insert failed, do not leave an orphaned image behind
			_ = s.Images.Remove(ctx, *imageURL)
		}
		return models.Listing{}, err
	}

	return listing, nil
}

// ModerateListing applies an admin action to the listing with the given id.
// Approve and reject are idempotent; delete also removes the stored image
// (best effort, the listing is gone either way).
func (s *ListingService) ModerateListing(ctx context.Context, id, action string) (string, error) {
	switch action {
	case "approve", "reject", "delete":
	default:
		return "", models.ErrInvalidAction
	}

	var message string
	var removedImage *string

	err := s.ListingRepo.Update(ctx, func(listings []models.Listing) ([]models.Listing, error) {
		idx := repositories.FindIndexByID(listings, id)
		if idx < 0 {
			return nil, models.ErrListingNotFound
		}

		switch action {
		case "approve":
			listings[idx].Status = models.StatusApproved
			message = "Listing approved successfully"
		case "reject":
			listings[idx].Status = models.StatusRejected
			message = "Listing rejected successfully"
		case "delete":
			removedImage = listings[idx].ImageURL
			listings = append(listings[:idx], listings[idx+1:]...)
			message = "Listing deleted successfully"
		}
		return listings, nil
	})
	if err != nil {
		return "", err
	}

	if removedImage != nil {
		_ = s.Images.Remove(ctx, *removedImage)
	}

	return message, nil
}

// GetPublicListings returns approved listings only, the default public view.
func (s *ListingService) GetPublicListings(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.ListingRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	approved := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if listing.Status == models.StatusApproved {
			approved = append(approved, listing)
		}
	}
	return approved, nil
}

// GetAllListings returns the unfiltered collection. Admin capability is
// enforced at the HTTP boundary.
func (s *ListingService) GetAllListings(ctx context.Context) ([]models.Listing, error) {
	return s.ListingRepo.LoadAll(ctx)
}

func (s *ListingService) GetStats(ctx context.Context) (models.ListingStats, error) {
	listings, err := s.ListingRepo.LoadAll(ctx)
	if err != nil {
		return models.ListingStats{}, err
	}
	return ComputeStats(listings), nil
}

// ComputeStats counts listings per status. Pure over whatever collection is
// passed in.
func ComputeStats(listings []models.Listing) models.ListingStats {
	stats := models.ListingStats{Total: len(listings)}
	for _, listing := range listings {
		switch listing.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// lastFour redacts a gift card number down to its last 4 characters. Shorter
// inputs are kept as-is; the full number is never returned.
func lastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "_")
}
