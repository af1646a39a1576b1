package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"giftmarketBack/internal/models"
	"giftmarketBack/internal/services"
)

type ListingHandler struct {
	Service   *services.ListingService
	Auth      *services.AuthService
	UploadDir string
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	req := models.CreateListingRequest{
		FullName:       r.FormValue("full_name"),
		Email:          r.FormValue("email"),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		GiftCardNumber: r.FormValue("gift_card_number"),
		CardName:       r.FormValue("card_name"),
		Amount:         r.FormValue("amount"),
	}

	var image *services.ImageUpload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image = &services.ImageUpload{Filename: header.Filename, Reader: file}
	}

	listing, err := h.Service.CreateListing(r.Context(), req, image)
	if err != nil {
		var missingErr *models.MissingFieldError
		var paymentErr *models.PaymentError
		switch {
		case errors.As(err, &missingErr), errors.As(err, &paymentErr):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Failed to create listing: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to create listing")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Listing created successfully. It will be reviewed within 24 hours.",
		"listing": listing,
	})
}

// GetListings serves the public feed. The unfiltered collection is only
// available with approved_only=false and a valid admin token; anonymous
// callers always get approved listings.
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("approved_only")
	approvedOnly := raw == "" || strings.EqualFold(raw, "true")
	if !approvedOnly && !h.isAdmin(r) {
		approvedOnly = true
	}

	var (
		listings []models.Listing
		err      error
	)
	if approvedOnly {
		listings, err = h.Service.GetPublicListings(r.Context())
	} else {
		listings, err = h.Service.GetAllListings(r.Context())
	}
	if err != nil {
		log.Printf("Failed to fetch listings: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}

	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) GetAllListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.GetAllListings(r.Context())
	if err != nil {
		log.Printf("Failed to fetch listings: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}

	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) ModerateListing(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing listing ID")
		return
	}

	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	message, err := h.Service.ModerateListing(r.Context(), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			respondError(w, http.StatusNotFound, "Listing not found")
		case errors.Is(err, models.ErrInvalidAction):
			respondError(w, http.StatusBadRequest, "Invalid action")
		default:
			log.Printf("Failed to moderate listing %s: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Failed to update listing")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// ServeImage serves files stored by the local image backend.
func (h *ListingHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := getParam(r, "filename")
	if filename == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.UploadDir, filepath.Base(filename)))
}

func (h *ListingHandler) isAdmin(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	return h.Auth.ValidToken(strings.TrimPrefix(authHeader, "Bearer "))
}
