package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/httputil"
	"github.com/mmzou/contactbook/internal/middleware"
	"github.com/mmzou/contactbook/internal/models"
	"github.com/mmzou/contactbook/internal/storage"
)

// phoneLength is the required number of digits in a contact phone number.
const phoneLength = 11

// ContactService handles contact CRUD for the authenticated user.
type ContactService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewContactService creates a new ContactService with the given storage backend.
func NewContactService(store storage.Store, logger *slog.Logger) *ContactService {
	return &ContactService{store: store, logger: logger}
}

// validPhone reports whether phone is exactly 11 decimal digits.
func validPhone(phone string) bool {
	if len(phone) != phoneLength {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// checkGroup verifies that a non-zero group id references one of the caller's
// groups. 0 is the "ungrouped" sentinel and is always legal.
func (s *ContactService) checkGroup(ctx context.Context, userID, groupID int64) (bool, error) {
	if groupID == 0 {
		return true, nil
	}
	return s.store.GroupExists(ctx, userID, groupID)
}

type contactEntry struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	GroupID int64  `json:"group_id"`
}

// HandleList returns the caller's contacts, optionally filtered by keyword
// (substring of name or phone) and group. Filters combine with AND.
// GET /api/contacts?keyword=&group_id=
func (s *ContactService) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	filter := storage.ContactFilter{Keyword: r.URL.Query().Get("keyword")}
	if raw := r.URL.Query().Get("group_id"); raw != "" {
		groupID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.BadRequest(w, "invalid group_id")
			return
		}
		filter.GroupID = groupID
	}

	contacts, err := s.store.ListContacts(r.Context(), userID, filter)
	if err != nil {
		s.logger.Error("failed to list contacts", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to list contacts")
		return
	}

	entries := make([]contactEntry, 0, len(contacts))
	for _, c := range contacts {
		entries = append(entries, contactEntry{Name: c.Name, Phone: c.Phone, GroupID: c.GroupID})
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

type addContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	GroupID int64  `json:"group_id"`
}

// HandleCreate adds a contact for the caller.
// POST /api/contacts
func (s *ContactService) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req addContactRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}
	if !validPhone(phone) {
		httputil.BadRequest(w, "phone must be 11 digits")
		return
	}

	ok, err := s.checkGroup(r.Context(), userID, req.GroupID)
	if err != nil {
		s.logger.Error("failed to check group", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to create contact")
		return
	}
	if !ok {
		httputil.BadRequest(w, "group does not exist")
		return
	}

	contact := &models.Contact{
		Name:      name,
		Phone:     phone,
		GroupID:   req.GroupID,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.CreateContact(r.Context(), contact); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			httputil.BadRequest(w, "phone already exists")
			return
		}
		s.logger.Error("failed to create contact", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to create contact")
		return
	}

	s.logger.Info("contact created", "user_id", userID, "contact_id", contact.ID)
	httputil.WriteJSON(w, http.StatusCreated, messageResponse{Message: "contact added"})
}

type updateContactRequest struct {
	OldPhone   string `json:"old_phone"`
	NewName    string `json:"new_name"`
	NewPhone   string `json:"new_phone"`
	NewGroupID int64  `json:"new_group_id"`
}

// HandleUpdate replaces the name, phone and group of the contact identified by
// old_phone. The store's affected-row count decides between 200 and 404.
// PUT /api/contacts
func (s *ContactService) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req updateContactRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	oldPhone := strings.TrimSpace(req.OldPhone)
	newName := strings.TrimSpace(req.NewName)
	newPhone := strings.TrimSpace(req.NewPhone)

	if oldPhone == "" || newName == "" || newPhone == "" {
		httputil.BadRequest(w, "old_phone, new_name and new_phone are required")
		return
	}
	if !validPhone(newPhone) {
		httputil.BadRequest(w, "phone must be 11 digits")
		return
	}

	ok, err := s.checkGroup(r.Context(), userID, req.NewGroupID)
	if err != nil {
		s.logger.Error("failed to check group", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to update contact")
		return
	}
	if !ok {
		httputil.BadRequest(w, "group does not exist")
		return
	}

	contact := &models.Contact{Name: newName, Phone: newPhone, GroupID: req.NewGroupID}
	if err := s.store.UpdateContact(r.Context(), userID, oldPhone, contact); err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			httputil.BadRequest(w, "phone already exists")
		case errors.Is(err, errs.ErrNotFound):
			httputil.NotFound(w, "contact not found")
		default:
			s.logger.Error("failed to update contact", "user_id", userID, "error", err)
			httputil.InternalError(w, "failed to update contact")
		}
		return
	}

	s.logger.Info("contact updated", "user_id", userID, "phone", newPhone)
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "contact updated"})
}

type deleteContactRequest struct {
	Phone string `json:"phone"`
}

// HandleDelete removes the contact identified by phone.
// DELETE /api/contacts
func (s *ContactService) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req deleteContactRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		httputil.BadRequest(w, "phone is required")
		return
	}

	if err := s.store.DeleteContact(r.Context(), userID, phone); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			httputil.NotFound(w, "contact not found")
			return
		}
		s.logger.Error("failed to delete contact", "user_id", userID, "error", err)
		httputil.InternalError(w, "failed to delete contact")
		return
	}

	s.logger.Info("contact deleted", "user_id", userID, "phone", phone)
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "contact deleted"})
}
