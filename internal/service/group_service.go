package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/httputil"
	"github.com/mmzou/contactbook/internal/middleware"
	"github.com/mmzou/contactbook/internal/models"
	"github.com/mmzou/contactbook/internal/storage"
)

// GroupService handles contact-group operations for the authenticated user.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

type groupEntry struct {
	ID        int64  `json:"id"`
	GroupName string `json:"group_name"`
}

// HandleList returns all groups owned by the caller.
// GET /api/groups
func (s *GroupService) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	groups, err := s.store.ListGroups(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list groups", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to list groups")
		return
	}

	entries := make([]groupEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, groupEntry{ID: g.ID, GroupName: g.GroupName})
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

type addGroupRequest struct {
	GroupName string `json:"group_name"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleCreate adds a group for the caller.
// POST /api/groups
func (s *GroupService) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req addGroupRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.GroupName)
	if name == "" {
		httputil.BadRequest(w, "group name is required")
		return
	}

	group := &models.Group{GroupName: name, UserID: userID}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			httputil.BadRequest(w, "group already exists")
			return
		}
		s.logger.Error("failed to create group", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to create group")
		return
	}

	s.logger.Info("group created", "user_id", userID, "group_id", group.ID, "group_name", name)
	httputil.WriteJSON(w, http.StatusCreated, messageResponse{Message: "group added"})
}
