package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/glucotrack/glucotrack/internal/domain"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
	"github.com/glucotrack/glucotrack/internal/interfaces"
	"github.com/glucotrack/glucotrack/internal/services"
)

func init() {
	// The frontend consumes readings as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Handler serves the HTTP surface over the core services.
type Handler struct {
	accounts     interfaces.AccountServiceInterface
	entries      interfaces.EntryServiceInterface
	achievements interfaces.AchievementServiceInterface
}

func NewHandler(
	accounts interfaces.AccountServiceInterface,
	entries interfaces.EntryServiceInterface,
	achievements interfaces.AchievementServiceInterface,
) *Handler {
	return &Handler{
		accounts:     accounts,
		entries:      entries,
		achievements: achievements,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// respondError maps the error taxonomy onto HTTP status codes. Messages
// never carry credential hashes or raw upstream payloads.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
			if appErr.Code == "INVALID_CREDENTIALS" {
				status = http.StatusUnauthorized
			}
		case apperrors.ErrorTypeConflict:
			status = http.StatusConflict
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrorTypeUpstream:
			status = http.StatusBadGateway
		case apperrors.ErrorTypePersistence, apperrors.ErrorTypeInternal:
			status = http.StatusInternalServerError
			message = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, messageResponse{Message: message})
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Glucotrack API - personal glucose and insulin journal."))
}

func (h *Handler) createUserAccount(w http.ResponseWriter, r *http.Request) {
	var registration domain.Registration
	if err := render.DecodeJSON(r.Body, &registration); err != nil {
		respondError(w, r, apperrors.NewValidationError("Request body must be valid JSON"))
		return
	}

	id, err := h.accounts.Register(r.Context(), registration)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"message": "User created successfully",
		"id":      id,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) validateUserLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperrors.NewValidationError("Request body must be valid JSON"))
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"id":         user.ID,
		"message":    "Login successful",
		"username":   user.Username,
		"first_name": user.FirstName,
	})
}

type createEntryRequest struct {
	AccountID uint `json:"account_id"`
	domain.EntryReadings
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperrors.NewValidationError("Request body must be valid JSON"))
		return
	}

	summary, err := h.entries.Create(r.Context(), req.AccountID, req.EntryReadings)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

func entryID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "entryID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.NewValidationError("entry id must be a positive integer")
	}
	return uint(id), nil
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.entries.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, entry)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	var accountID *uint
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(w, r, apperrors.NewValidationError("account_id must be a positive integer"))
			return
		}
		id := uint(parsed)
		accountID = &id
	}

	entries, err := h.entries.List(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, entries)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var update domain.EntryUpdate
	if err := render.DecodeJSON(r.Body, &update); err != nil {
		respondError(w, r, apperrors.NewValidationError("Request body must be valid JSON"))
		return
	}

	entry, err := h.entries.Update(r.Context(), id, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"message": "Entry updated successfully",
		"entry":   entry,
	})
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.entries.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "Entry deleted successfully"})
}

func (h *Handler) rankProgress(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "accountID")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(w, r, apperrors.NewValidationError("account id must be a positive integer"))
		return
	}

	progress, err := h.achievements.RankProgress(r.Context(), uint(parsed))
	if err != nil {
		respondError(w, r, err)
		return
	}

	// The top rank has no numeric distance; the sentinel keeps that
	// distinction visible to the caller.
	var toNext interface{}
	if progress.AtMaxRank {
		toNext = services.MaxRankSentinel
	} else {
		toNext = progress.PointsToNext
	}

	render.JSON(w, r, map[string]interface{}{
		"rank":                progress.Rank,
		"current_points":      progress.Points,
		"points_to_next_rank": toNext,
	})
}

// testEnv returns a safe subset of the environment. Never the DB password.
func (h *Handler) testEnv(w http.ResponseWriter, r *http.Request) {
	envOrDefault := func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return "Not set"
	}
	render.JSON(w, r, map[string]string{
		"ENVIRONMENT":   envOrDefault("ENVIRONMENT"),
		"database_host": envOrDefault("DB_HOST"),
		"database_name": envOrDefault("DB_NAME"),
		"database_user": envOrDefault("DB_USER"),
	})
}
