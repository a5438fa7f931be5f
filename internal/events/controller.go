package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"matchday/internal/shared/config"
	"matchday/internal/shared/middleware"
	"matchday/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	cfg     *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{service: service, cfg: cfg}
}

// CreateEvent handles POST /events. The body is multipart form data:
// scalar fields plus JSON-encoded "location" and "tickets" fields and
// an optional "image" file.
func (ctrl *Controller) CreateEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := json.Unmarshal([]byte(c.PostForm("location")), &req.Location); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location payload", nil, err.Error())
		return
	}
	// The JSON-decoded fields bypass ShouldBind, so their binding tags
	// are enforced here
	if err := binding.Validator.ValidateStruct(req.Location); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location payload", nil, err.Error())
		return
	}
	if err := json.Unmarshal([]byte(c.PostForm("tickets")), &req.Tickets); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid tickets payload", nil, err.Error())
		return
	}
	for i := range req.Tickets {
		if err := binding.Validator.ValidateStruct(req.Tickets[i]); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid tickets payload", nil, err.Error())
			return
		}
	}

	imageURL, err := ctrl.saveImage(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Image upload failed", nil, err.Error())
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), req, imageURL, caller.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrNoTiers), errors.Is(err, ErrDuplicateTier):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create event", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", event, nil)
}

// GetEvent handles GET /events/:id
func (ctrl *Controller) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get event", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// ListEvents handles GET /events
func (ctrl *Controller) ListEvents(c *gin.Context) {
	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.ListEvents(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list events", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", list, nil)
}

// UpdateEvent handles PUT /events/:id
func (ctrl *Controller) UpdateEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if raw := c.PostForm("location"); raw != "" {
		var loc LocationInput
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location payload", nil, err.Error())
			return
		}
		if err := binding.Validator.ValidateStruct(loc); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location payload", nil, err.Error())
			return
		}
		req.Location = &loc
	}

	imageURL, err := ctrl.saveImage(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Image upload failed", nil, err.Error())
		return
	}

	event, err := ctrl.service.UpdateEvent(c.Request.Context(), id, req, imageURL, caller.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrNotOrganizer):
			response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
		case errors.Is(err, ErrInvalidDate):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update event", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event updated successfully", event, nil)
}

// DeleteEvent handles DELETE /events/:id
func (ctrl *Controller) DeleteEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := ctrl.service.DeleteEvent(c.Request.Context(), id, caller.UserID); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrNotOrganizer):
			response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete event", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

// saveImage stores an uploaded "image" file under the configured
// upload path and returns its public URL. Returns "" when no file
// was sent.
func (ctrl *Controller) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}

	if file.Size > ctrl.cfg.Upload.MaxSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", ctrl.cfg.Upload.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(ctrl.cfg.Upload.Path, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
