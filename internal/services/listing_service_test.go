package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"giftmarketBack/internal/models"
	"giftmarketBack/internal/repositories"
	"giftmarketBack/internal/storage"
)

func newTestService(t *testing.T) (*ListingService, string) {
	t.Helper()

	dir := t.TempDir()
	uploadDir := filepath.Join(dir, "uploads")
	images, err := storage.NewLocalImageStore(uploadDir)
	if err != nil {
		t.Fatalf("NewLocalImageStore failed: %v", err)
	}

	svc := &ListingService{
		ListingRepo: &repositories.ListingRepository{DataFile: filepath.Join(dir, "listings.json")},
		Payments:    &PaymentService{},
		Images:      images,
	}
	return svc, uploadDir
}

func validRequest() models.CreateListingRequest {
	return models.CreateListingRequest{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Title:          "Amazon gift card",
		Description:    "Unused card, selling below face value",
		GiftCardNumber: "ABCDEFGH1234",
		CardName:       "Amazon",
		Amount:         "25.00",
	}
}

func TestCreateListingRedactsGiftCardNumber(t *testing.T) {
	svc, _ := newTestService(t)

	listing, err := svc.CreateListing(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	if listing.PaymentDetails.GiftCardNumber != "1234" {
		t.Errorf("expected redacted number 1234, got %q", listing.PaymentDetails.GiftCardNumber)
	}
	if len(listing.PaymentDetails.GiftCardNumber) > 4 {
		t.Errorf("redacted number longer than 4 characters: %q", listing.PaymentDetails.GiftCardNumber)
	}
	if !listing.PaymentDetails.Verified {
		t.Error("expected payment to be verified")
	}
	if listing.Status != models.StatusPending {
		t.Errorf("expected new listing to be Pending, got %q", listing.Status)
	}
	if got := listing.VerificationDate.Sub(listing.CreatedAt).Hours(); got != 24 {
		t.Errorf("expected verification date 24h after creation, got %vh", got)
	}
}

func TestCreateListingMissingFieldPersistsNothing(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Email = ""

	_, err := svc.CreateListing(context.Background(), req, nil)
	var missingErr *models.MissingFieldError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missingErr.Field != "email" {
		t.Errorf("expected missing field email, got %q", missingErr.Field)
	}

	listings, err := svc.GetAllListings(context.Background())
	if err != nil {
		t.Fatalf("GetAllListings returned error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected nothing persisted, got %d listings", len(listings))
	}
}

func TestCreateListingPaymentFailurePersistsNothing(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Amount = "-5"

	_, err := svc.CreateListing(context.Background(), req, nil)
	var paymentErr *models.PaymentError
	if !errors.As(err, &paymentErr) {
		t.Fatalf("expected PaymentError, got %v", err)
	}
	if paymentErr.Reason != "amount must be positive" {
		t.Errorf("unexpected reason %q", paymentErr.Reason)
	}

	listings, _ := svc.GetAllListings(context.Background())
	if len(listings) != 0 {
		t.Fatalf("expected nothing persisted, got %d listings", len(listings))
	}
}

func TestCreateListingStoresAllowedImage(t *testing.T) {
	svc, uploadDir := newTestService(t)

	image := &ImageUpload{Filename: "card photo.png", Reader: strings.NewReader("fake png bytes")}
	listing, err := svc.CreateListing(context.Background(), validRequest(), image)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	if listing.ImageURL == nil {
		t.Fatal("expected image_url to be set")
	}
	if !strings.HasPrefix(*listing.ImageURL, "/uploads/") {
		t.Errorf("unexpected image url %q", *listing.ImageURL)
	}
	if !strings.HasSuffix(*listing.ImageURL, "_card_photo.png") {
		t.Errorf("expected sanitized original name in url, got %q", *listing.ImageURL)
	}

	name := strings.TrimPrefix(*listing.ImageURL, "/uploads/")
	if _, err := os.Stat(filepath.Join(uploadDir, name)); err != nil {
		t.Errorf("expected stored image on disk: %v", err)
	}
}

func TestCreateListingDropsDisallowedExtension(t *testing.T) {
	svc, uploadDir := newTestService(t)

	image := &ImageUpload{Filename: "malware.exe", Reader: strings.NewReader("nope")}
	listing, err := svc.CreateListing(context.Background(), validRequest(), image)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	if listing.ImageURL != nil {
		t.Errorf("expected image to be dropped, got url %q", *listing.ImageURL)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestModerateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateListing(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	_, err = svc.ModerateListing(context.Background(), "no-such-id", "approve")
	if !errors.Is(err, models.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}

	listings, _ := svc.GetAllListings(context.Background())
	if len(listings) != 1 || listings[0].ID != created.ID || listings[0].Status != models.StatusPending {
		t.Fatalf("store changed after failed moderation: %+v", listings)
	}
}

func TestModerateInvalidAction(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateListing(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	_, err = svc.ModerateListing(context.Background(), created.ID, "promote")
	if !errors.Is(err, models.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}

	listings, _ := svc.GetAllListings(context.Background())
	if listings[0].Status != models.StatusPending {
		t.Fatalf("status changed on invalid action: %q", listings[0].Status)
	}
}

func TestModerateApproveIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateListing(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.ModerateListing(context.Background(), created.ID, "approve"); err != nil {
			t.Fatalf("approve #%d returned error: %v", i+1, err)
		}
		listings, _ := svc.GetAllListings(context.Background())
		if listings[0].Status != models.StatusApproved {
			t.Fatalf("approve #%d: expected Approved, got %q", i+1, listings[0].Status)
		}
	}
}

func TestModerateDeleteRemovesListingAndImage(t *testing.T) {
	svc, uploadDir := newTestService(t)

	image := &ImageUpload{Filename: "card.jpg", Reader: strings.NewReader("jpeg bytes")}
	created, err := svc.CreateListing(context.Background(), validRequest(), image)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}
	imagePath := filepath.Join(uploadDir, strings.TrimPrefix(*created.ImageURL, "/uploads/"))
	if _, err := os.Stat(imagePath); err != nil {
		t.Fatalf("expected image on disk before delete: %v", err)
	}

	message, err := svc.ModerateListing(context.Background(), created.ID, "delete")
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if message != "Listing deleted successfully" {
		t.Errorf("unexpected message %q", message)
	}

	listings, _ := svc.GetAllListings(context.Background())
	if len(listings) != 0 {
		t.Fatalf("expected listing removed, got %d", len(listings))
	}
	if _, err := os.Stat(imagePath); !os.IsNotExist(err) {
		t.Errorf("expected image file removed, stat err: %v", err)
	}
}

func TestPublicFeedOnlyShowsApproved(t *testing.T) {
	svc, _ := newTestService(t)

	ids := make([]string, 3)
	for i := range ids {
		created, err := svc.CreateListing(context.Background(), validRequest(), nil)
		if err != nil {
			t.Fatalf("CreateListing returned error: %v", err)
		}
		ids[i] = created.ID
	}

	if _, err := svc.ModerateListing(context.Background(), ids[0], "approve"); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if _, err := svc.ModerateListing(context.Background(), ids[1], "reject"); err != nil {
		t.Fatalf("reject returned error: %v", err)
	}

	public, err := svc.GetPublicListings(context.Background())
	if err != nil {
		t.Fatalf("GetPublicListings returned error: %v", err)
	}
	if len(public) != 1 {
		t.Fatalf("expected 1 public listing, got %d", len(public))
	}
	if public[0].ID != ids[0] || public[0].Status != models.StatusApproved {
		t.Errorf("unexpected public listing %+v", public[0])
	}
}

func TestListingLifecycleEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateListing(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("CreateListing returned error: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("expected Pending, got %q", created.Status)
	}
	if created.PaymentDetails.GiftCardNumber != "1234" || !created.PaymentDetails.Verified {
		t.Fatalf("unexpected payment details %+v", created.PaymentDetails)
	}

	if _, err := svc.ModerateListing(context.Background(), created.ID, "approve"); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	public, _ := svc.GetPublicListings(context.Background())
	if len(public) != 1 || public[0].ID != created.ID {
		t.Fatalf("expected approved listing in public feed, got %+v", public)
	}

	if _, err := svc.ModerateListing(context.Background(), created.ID, "delete"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	all, _ := svc.GetAllListings(context.Background())
	if len(all) != 0 {
		t.Fatalf("expected empty store after delete, got %d", len(all))
	}
}

func TestComputeStats(t *testing.T) {
	listings := []models.Listing{
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusApproved},
		{Status: models.StatusRejected},
	}

	stats := ComputeStats(listings)
	if stats.Total != 4 || stats.Pending != 2 || stats.Approved != 1 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	empty := ComputeStats(nil)
	if empty.Total != 0 || empty.Pending != 0 || empty.Approved != 0 || empty.Rejected != 0 {
		t.Fatalf("unexpected stats for empty collection %+v", empty)
	}
}
