package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"giftmarketBack/internal/models"
	"giftmarketBack/internal/services"
)

type AdminHandler struct {
	Auth    *services.AuthService
	Service *services.ListingService
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	token, err := h.Auth.Login(req.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Invalid password",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"message": "Login successful",
	})
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		log.Printf("Failed to compute stats: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
