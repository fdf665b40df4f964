package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/middleware"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, err := h.notificationService.List(r.Context(), actorID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notifications)
}

type markAsReadBody struct {
	IDs []string `json:"ids"`
}

func (h *NotificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var body markAsReadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(body.IDs) == 0 {
		response.BadRequest(w, "ids is required", nil)
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), actorID, body.IDs); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

// Stream pushes the actor's notifications over server-sent events until
// the client disconnects.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.notificationService.Subscribe(r.Context(), actorID)
	defer cleanup()

	for {
		select {
		case n, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
