package notif

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"intrachat/internal/common"
	"intrachat/internal/dbmysql"
)

// NotificationHandler exposes the system-notification surface: the catch-up
// store read, the monotonic read flag and the publish entry point used by
// other intranet components.
type NotificationHandler struct {
	dispatcher *Dispatcher
	repo       dbmysql.NotificationRepository
}

func NewNotificationHandler(dispatcher *Dispatcher, repo dbmysql.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher, repo: repo}
}

func (h *NotificationHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/notifications/", h.List).Methods("GET")
	api.HandleFunc("/notifications/send/", h.Send).Methods("POST")
	api.HandleFunc("/notifications/unread-count/", h.UnreadCount).Methods("GET")
	api.HandleFunc("/notifications/{notificationID}/read/", h.MarkAsRead).Methods("PUT")
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	notifications, err := h.repo.ByUserID(r.Context(), caller, limit, offset)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	out := make([]common.SystemMessage, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, n.AsSystemMessage())
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": out,
	})
}

// Send publishes a system notification to another user's mailbox. Intended
// for intranet components behind the same gateway, not end users; staff-like
// restrictions live at that boundary.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		SystemNotification
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.E(common.KindInvalidArgument, "invalid request body"))
		return
	}

	notification, err := h.dispatcher.PublishSystem(r.Context(), req.UserID, req.SystemNotification)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":         true,
		"notification_id": notification.ID,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	notificationID := mux.Vars(r)["notificationID"]

	if err := h.repo.MarkAsRead(r.Context(), notificationID, caller); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())

	count, err := h.repo.UnreadCount(r.Context(), caller)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"unread_count": count,
	})
}
