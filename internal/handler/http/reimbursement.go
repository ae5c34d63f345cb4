package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReimbursementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListByStatus(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	UpdateDescription(w http.ResponseWriter, r *http.Request)
}

type reimbursementHandlerImpl struct {
	reimbursementService reimbursement.ReimbursementService
}

func NewReimbursementHandler(reimbursementService reimbursement.ReimbursementService) ReimbursementHandler {
	return &reimbursementHandlerImpl{reimbursementService: reimbursementService}
}

// Create implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotLoggedIn)
		return
	}

	var createReq reimbursement.CreateReimbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateReimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.UserID = principal.UserID

	created, err := h.reimbursementService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateReimbursement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Reimbursement submitted", "reimb_id", created.ID, "user_id", principal.UserID)
	response.Created(w, fmt.Sprintf("Reimbursement amount: %d submitted!", created.Amount), reimbursement.NewReimbursementResponse(created))
}

// List implements ReimbursementHandler. Managers see every reimbursement,
// employees only their own.
func (h *reimbursementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotLoggedIn)
		return
	}

	var (
		list []reimbursement.ReimbursementResponse
		err  error
	)
	if principal.IsManager() {
		list, err = h.reimbursementService.List(r.Context())
	} else {
		list, err = h.reimbursementService.ListByUser(r.Context(), principal.UserID)
	}
	if err != nil {
		slog.Error("ListReimbursements service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Summary implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotLoggedIn)
		return
	}

	var owner *int64
	if !principal.IsManager() {
		owner = &principal.UserID
	}

	summary, err := h.reimbursementService.Summary(r.Context(), owner)
	if err != nil {
		slog.Error("ReimbursementSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Delete implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "reimbId")
	if !ok {
		response.BadRequest(w, "Invalid reimbursement id", nil)
		return
	}

	message, err := h.reimbursementService.Delete(r.Context(), id)
	if err != nil {
		slog.Error("DeleteReimbursement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Reimbursement deleted", "reimb_id", id)
	response.SuccessWithMessage(w, message, nil)
}

// ListByStatus implements ReimbursementHandler.
//
// ALL lists without a status filter. Managers see every owner and may narrow
// by owner role with ?role=; employees see their own. An empty result is a 400
// except for ALL, which returns an empty list.
func (h *reimbursementHandlerImpl) ListByStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotLoggedIn)
		return
	}

	status := chi.URLParam(r, "status")
	role := r.URL.Query().Get("role")

	var (
		list []reimbursement.ReimbursementResponse
		err  error
	)
	switch {
	case principal.IsManager() && role != "":
		list, err = h.reimbursementService.ListByStatusAndRole(r.Context(), status, role)
	case principal.IsManager():
		list, err = h.reimbursementService.ListByStatus(r.Context(), status)
	case status == string(reimbursement.StatusAll):
		list, err = h.reimbursementService.ListByUser(r.Context(), principal.UserID)
	default:
		list, err = h.reimbursementService.ListByStatusAndUser(r.Context(), status, principal.UserID)
	}
	if err != nil {
		slog.Error("ListReimbursementsByStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if len(list) == 0 && status != string(reimbursement.StatusAll) {
		response.BadRequest(w, fmt.Sprintf("You don't have any %s reimbursement recently!", status), nil)
		return
	}

	response.Success(w, list)
}

// UpdateStatus implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "reimbId")
	if !ok {
		response.BadRequest(w, "Invalid reimbursement id", nil)
		return
	}

	var updateReq reimbursement.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = id

	if err := h.reimbursementService.UpdateStatus(r.Context(), updateReq); err != nil {
		slog.Error("UpdateStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Reimbursement status updated", "reimb_id", id, "status", *updateReq.Status)
	response.SuccessWithMessage(w, fmt.Sprintf("Reimbursement status updated to %s!", *updateReq.Status), nil)
}

// UpdateDescription implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "reimbId")
	if !ok {
		response.BadRequest(w, "Invalid reimbursement id", nil)
		return
	}

	var updateReq reimbursement.UpdateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateDescription decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = id

	updated, err := h.reimbursementService.UpdateDescription(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateDescription service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}
