package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minjoonc/portfolio-backend/internal/models"
	"github.com/minjoonc/portfolio-backend/internal/repository"
	"github.com/minjoonc/portfolio-backend/internal/validation"
	"github.com/minjoonc/portfolio-backend/pkg/clientip"
)

// FeedbackHandler serves the /api/feedback endpoints. The repository is
// injected at startup; there is no shared package state.
type FeedbackHandler struct {
	repo           *repository.FeedbackRepo
	exposeClientID bool
}

func NewFeedbackHandler(repo *repository.FeedbackRepo, exposeClientID bool) *FeedbackHandler {
	return &FeedbackHandler{repo: repo, exposeClientID: exposeClientID}
}

// SubmitFeedbackResponse represents the response after submitting feedback
type SubmitFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// GetFeedbackResponse represents the response for listing feedback by slug
type GetFeedbackResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	Data    []map[string]interface{} `json:"data"`
	Count   int                      `json:"count"`
}

// DeleteFeedbackResponse represents the response after deleting feedback
type DeleteFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List handles GET /api/feedback?slug=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	slug := r.URL.Query().Get("slug")
	if slug == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(GetFeedbackResponse{
			Success: false,
			Message: "slug query parameter is required",
			Data:    []map[string]interface{}{},
		})
		return
	}

	feedbacks, err := h.repo.ListBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("failed to fetch feedback for slug %q: %v", slug, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(GetFeedbackResponse{
			Success: false,
			Message: "Failed to fetch feedback",
			Data:    []map[string]interface{}{},
		})
		return
	}

	// Convert to response format
	data := make([]map[string]interface{}, 0, len(feedbacks))
	for _, fb := range feedbacks {
		entry := map[string]interface{}{
			"id":         fb.ID.Hex(),
			"slug":       fb.Slug,
			"name":       fb.Name,
			"message":    fb.Message,
			"created_at": fb.CreatedAt,
		}
		if fb.Email != "" {
			entry["email"] = fb.Email
		}
		if h.exposeClientID && fb.ClientID != "" {
			entry["client_id"] = fb.ClientID
		}
		data = append(data, entry)
	}

	json.NewEncoder(w).Encode(GetFeedbackResponse{
		Success: true,
		Data:    data,
		Count:   len(data),
	})
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req validation.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	result, err := validation.ValidateFeedback(req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	// A filled honeypot means an automated submission: answer success so the
	// bot learns nothing, but never persist.
	if result.Automated {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: true,
			Message: "Feedback submitted successfully. Thank you!",
		})
		return
	}

	saved, err := h.repo.Insert(r.Context(), models.Feedback{
		Slug:     result.Slug,
		Name:     result.Name,
		Message:  result.Message,
		Email:    result.Email,
		ClientID: clientip.FromRequest(r),
	})
	if err != nil {
		log.Printf("failed to insert feedback: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Failed to submit feedback",
		})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitFeedbackResponse{
		Success: true,
		Message: "Feedback submitted successfully. Thank you!",
		ID:      saved.ID.Hex(),
	})
}

// Delete handles DELETE /api/feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rawID := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(DeleteFeedbackResponse{
			Success: false,
			Message: "Invalid feedback ID",
		})
		return
	}

	deleted, err := h.repo.DeleteByID(r.Context(), id)
	if err != nil {
		log.Printf("failed to delete feedback %s: %v", id.Hex(), err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(DeleteFeedbackResponse{
			Success: false,
			Message: "Failed to delete feedback",
		})
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(DeleteFeedbackResponse{
			Success: false,
			Message: "Feedback not found",
		})
		return
	}

	json.NewEncoder(w).Encode(DeleteFeedbackResponse{
		Success: true,
		Message: "Feedback deleted successfully",
	})
}
