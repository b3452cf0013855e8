// Package handler wires the chat HTTP surface to the service layer.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"intrachat/internal/chat/service"
	"intrachat/internal/common"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RegisterRoutes mounts the chat surface on a router that already carries
// the auth middleware.
func (h *ChatHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/chat/", h.ListChats).Methods("GET")
	api.HandleFunc("/chat/", h.CreateChat).Methods("POST")
	api.HandleFunc("/chat/search/", h.SearchMessages).Methods("GET")
	api.HandleFunc("/chat/archive/", h.ArchiveChat).Methods("POST")
	api.HandleFunc("/chat/unarchive/", h.UnarchiveChat).Methods("POST")
	api.HandleFunc("/chat/{chatID}/messages/", h.GetMessages).Methods("GET")
	api.HandleFunc("/chat/{chatID}/messages/", h.PostMessage).Methods("POST")
	api.HandleFunc("/chat/{chatID}/members/", h.AddMember).Methods("POST")
	api.HandleFunc("/chat/{chatID}/members/{userID}/", h.RemoveMember).Methods("DELETE")
	api.HandleFunc("/message/{messageID}/status/", h.UpdateMessageStatus).Methods("PUT")
	api.HandleFunc("/message/{messageID}/", h.DeleteMessage).Methods("DELETE")
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	includeArchived := r.URL.Query().Get("archived") == "true"

	chats, err := h.chatService.ListConversations(r.Context(), caller, includeArchived)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chats":   chats,
	})
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())

	var req struct {
		Type           common.ConversationKind `json:"type"`
		ParticipantIDs []string                `json:"participant_ids"`
		Name           string                  `json:"name"`
		Description    string                  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.E(common.KindInvalidArgument, "invalid request body"))
		return
	}

	chat, err := h.chatService.CreateConversation(r.Context(), caller, req.Type, req.ParticipantIDs, req.Name, req.Description)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"chat":    chat,
	})
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	chatID := mux.Vars(r)["chatID"]

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	messages, err := h.chatService.GetMessages(r.Context(), caller, chatID, page, pageSize)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	chatID := mux.Vars(r)["chatID"]

	var payload common.MessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.E(common.KindInvalidArgument, "invalid request body"))
		return
	}

	msg, err := h.chatService.PostMessage(r.Context(), caller, chatID, &payload)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

func (h *ChatHandler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())

	messageID, err := parseMessageID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var req struct {
		Status common.DeliveryStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.E(common.KindInvalidArgument, "invalid request body"))
		return
	}

	if err := h.chatService.UpdateMessageStatus(r.Context(), caller, messageID, req.Status); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())

	messageID, err := parseMessageID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.chatService.DeleteMessage(r.Context(), caller, messageID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ChatHandler) SearchMessages(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	chatID := r.URL.Query().Get("chat_id")
	query := r.URL.Query().Get("q")

	messages, err := h.chatService.SearchMessages(r.Context(), caller, chatID, query)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

func (h *ChatHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	chatID := mux.Vars(r)["chatID"]

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		common.WriteError(w, common.Ef(common.KindInvalidArgument, "user_id", "user id is required"))
		return
	}

	if err := h.chatService.AddMember(r.Context(), caller, chatID, req.UserID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ChatHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller := common.CallerID(r.Context())
	vars := mux.Vars(r)

	if err := h.chatService.RemoveMember(r.Context(), caller, vars["chatID"], vars["userID"]); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ChatHandler) ArchiveChat(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *ChatHandler) UnarchiveChat(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *ChatHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	caller := common.CallerID(r.Context())

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.E(common.KindInvalidArgument, "invalid request body"))
		return
	}

	var err error
	if archived {
		err = h.chatService.ArchiveChat(r.Context(), caller, req.UserID)
	} else {
		err = h.chatService.UnarchiveChat(r.Context(), caller, req.UserID)
	}
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func parseMessageID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["messageID"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, common.Ef(common.KindInvalidArgument, "message_id", "malformed message id")
	}
	return uint(id), nil
}
