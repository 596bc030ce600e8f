package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mwhitford/deskchat/internal/api/middleware"
	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/service"
)

type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

type AddInterestRequest struct {
	Interest string `json:"interest"`
}

// List returns every user except the caller.
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.directoryService.ListExcept(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [directory.List] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeUsers(w, users)
}

// Search filters the directory by a case-insensitive substring of name
// or interests.
func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	users, err := h.directoryService.Search(r.Context(), query, user.ID)
	if err != nil {
		log.Printf("ERROR [directory.Search] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeUsers(w, users)
}

// AddInterest appends one interest tag to the caller's profile.
func (h *DirectoryHandler) AddInterest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Interest == "" {
		http.Error(w, "Interest is required", http.StatusBadRequest)
		return
	}

	updated, err := h.directoryService.AddInterest(r.Context(), user.ID, req.Interest)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [directory.AddInterest] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewUserResponse(updated))
}

func writeUsers(w http.ResponseWriter, users []*domain.User) {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, NewUserResponse(u))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
