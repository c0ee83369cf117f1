package handlers

import (
	"net/http"
	"strconv"

	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
)

// DirectoryHandler serves branch and user endpoints.
type DirectoryHandler struct {
	logger logx.Logger
	uc     DirectoryUsecase
}

// NewDirectoryHandler wires a DirectoryUsecase into HTTP handlers.
func NewDirectoryHandler(logger logx.Logger, uc DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{logger: logger, uc: uc}
}

// ListBranches handles GET /branches?status=.
func (h *DirectoryHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	if _, ok := actor(h.logger, w, r); !ok {
		return
	}
	var status *domain.BranchStatus
	if s := r.URL.Query().Get("status"); s != "" {
		v := domain.BranchStatus(s)
		status = &v
	}

	list, err := h.uc.ListBranches(r.Context(), status)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, branchesToResponse(list))
}

// CreateBranch handles POST /branches.
func (h *DirectoryHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	var req createBranchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	b, err := h.uc.CreateBranch(r.Context(), a, req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/branches/"+strconv.FormatInt(b.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, branchToResponse(b))
}

// SetBranchStatus handles PATCH /branches/{id}/status.
func (h *DirectoryHandler) SetBranchStatus(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req setBranchStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	b, err := h.uc.SetBranchStatus(r.Context(), a, id, req.Status)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, branchToResponse(b))
}

// ListDeliveryUsers handles GET /branches/{id}/delivery-users.
// Only admins of the branch (or super admins) may read it.
func (h *DirectoryHandler) ListDeliveryUsers(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if !a.IsAdmin() || !a.CanAccessBranch(id) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.uc.ListDeliveryUsers(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, usersToResponse(list))
}

// ListUsers handles GET /users?branch_id=&role=.
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	var f domain.UserFilter
	if s := q.Get("branch_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid branch_id")
			return
		}
		f.BranchID = &v
	}
	if s := q.Get("role"); s != "" {
		role := domain.Role(s)
		f.Role = &role
	}

	list, err := h.uc.ListUsers(r.Context(), a, f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, usersToResponse(list))
}

// CreateUser handles POST /users.
func (h *DirectoryHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	var req createUserRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	u, err := h.uc.CreateUser(r.Context(), a, req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/users/"+strconv.FormatInt(u.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, userToResponse(u))
}
