package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/middleware"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/lovemap/lovemap-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type PinHandler struct {
	pinService PinServiceInterface
	hub        HubInterface
}

func NewPinHandler(pinService PinServiceInterface, hub HubInterface) *PinHandler {
	return &PinHandler{pinService: pinService, hub: hub}
}

func pinResponse(pin *models.Pin) dto.PinResponse {
	return dto.PinResponse{
		ID:        pin.ID,
		UserID:    pin.UserID,
		Nickname:  pin.Nickname,
		Status:    pin.Status,
		YoutubeID: pin.YoutubeID,
		Lat:       pin.Lat,
		Lng:       pin.Lng,
		CreatedAt: pin.CreatedAt,
	}
}

func (h *PinHandler) List(c *drift.Context) {
	pins, err := h.pinService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list pins")
		return
	}

	responses := make([]dto.PinResponse, 0, len(pins))
	for i := range pins {
		responses = append(responses, pinResponse(&pins[i]))
	}

	_ = c.JSON(200, responses)
}

func (h *PinHandler) GetMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	pin, err := h.pinService.GetByUserID(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get pin")
		return
	}
	if pin == nil {
		c.NotFound("pin not found")
		return
	}

	_ = c.JSON(200, pinResponse(pin))
}

func (h *PinHandler) Upsert(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpsertPinRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Nickname == "" {
		c.BadRequest("nickname is required")
		return
	}

	ctx := context.Background()

	existing, err := h.pinService.GetByUserID(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to get pin")
		return
	}

	pin, err := h.pinService.Upsert(ctx, userID, req.Nickname, req.Status, req.YoutubeURL, req.Lat, req.Lng)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStatusRequired):
			c.BadRequest("status is required")
		case errors.Is(err, services.ErrInvalidYouTubeURL):
			c.BadRequest("youtube_url is not a valid YouTube video URL or ID")
		case errors.Is(err, services.ErrNicknameTooLong):
			c.BadRequest("nickname must be at most 20 characters")
		default:
			c.InternalServerError("failed to save pin")
		}
		return
	}

	if existing == nil {
		h.hub.BroadcastPinCreated(pin)
	} else {
		h.hub.BroadcastPinUpdated(pin)
	}

	_ = c.JSON(200, pinResponse(pin))
}

func (h *PinHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.pinService.Remove(context.Background(), userID); err != nil {
		c.InternalServerError("failed to delete pin")
		return
	}

	h.hub.BroadcastPinDeleted(userID)

	_ = c.JSON(200, map[string]string{"message": "pin deleted"})
}
