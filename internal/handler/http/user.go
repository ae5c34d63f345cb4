package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// Register implements UserHandler.
func (h *userHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq user.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered successfully", "user_id", created.ID)
	response.Created(w, fmt.Sprintf("%s was created!", created.Username), user.NewUserResponse(created))
}

// Delete implements UserHandler.
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotLoggedIn)
		return
	}

	id, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	if id == principal.UserID {
		response.HandleError(w, user.ErrCannotDeleteSelf)
		return
	}

	target, err := h.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User deleted successfully", "user_id", id, "deleted_by", principal.UserID)
	response.SuccessWithMessage(w, fmt.Sprintf("%s has been deleted!", target.Username), nil)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	found, err := h.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateRole implements UserHandler.
func (h *userHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("UpdateRole read error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updateReq := user.UpdateRoleRequest{ID: id, Role: roleFromBody(body)}
	updated, err := h.userService.UpdateRole(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateRole service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User role updated successfully", "user_id", id, "role", updated.Role)
	response.Success(w, updated)
}

// roleFromBody accepts {"role":"manager"}, "manager" or a bare manager.
func roleFromBody(body []byte) string {
	body = bytes.TrimSpace(body)

	var obj struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Role != "" {
		return obj.Role
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	return string(body)
}
