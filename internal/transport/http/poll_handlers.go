package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/duochat/duochat-server/internal/chat"
)

// PollHandlers implements the stateless request/response transport. Each
// request reads or mutates the store once; presence is refreshed as a side
// effect of polling.
type PollHandlers struct {
	store *chat.Store
	log   *zerolog.Logger
}

// NewPollHandlers creates the polling adapter over the given store.
func NewPollHandlers(store *chat.Store, logger *zerolog.Logger) *PollHandlers {
	return &PollHandlers{
		store: store,
		log:   logger,
	}
}

// JoinRequest represents the join request body.
type JoinRequest struct {
	Username string `json:"username" binding:"required"`
}

// JoinResponse returns the new user plus the full current state.
type JoinResponse struct {
	User        chat.User      `json:"user"`
	Messages    []chat.Message `json:"messages"`
	OnlineUsers []chat.User    `json:"onlineUsers"`
}

// SendRequest represents the send-message request body.
type SendRequest struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// SendResponse returns the created message.
type SendResponse struct {
	Message chat.Message `json:"message"`
}

// PollResponse returns the delta since the client's cursor plus presence
// and stats.
type PollResponse struct {
	Messages    []chat.Message `json:"messages"`
	OnlineUsers []chat.User    `json:"onlineUsers"`
	Stats       chat.Stats     `json:"stats"`
}

// LeaveRequest identifies the departing user by id or username.
type LeaveRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Join handles an explicit join.
// POST /api/join
func (h *PollHandlers) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	user := h.store.AddUser(username)
	h.store.AddSystemMessage(username + " joined the chat")
	h.log.Info().Str("username", username).Str("user_id", user.ID).Msg("user joined via polling")

	c.JSON(http.StatusOK, JoinResponse{
		User:        user,
		Messages:    h.store.Messages(),
		OnlineUsers: h.store.OnlineUsers(),
	})
}

// Send handles a message send. A sender unknown to the store is joined
// implicitly; polling clients may have been swept between requests.
// POST /api/messages
func (h *PollHandlers) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and content are required"})
		return
	}
	username := strings.TrimSpace(req.Username)
	content := strings.TrimSpace(req.Content)
	if username == "" || content == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and content are required"})
		return
	}

	user, ok := h.store.UserByName(username)
	if !ok {
		user = h.store.AddUser(username)
	} else {
		h.store.TouchUser(user.ID)
	}

	msg := h.store.AddMessage(user.Username, content, user.Color, chat.MessageTypeUser)
	c.JSON(http.StatusCreated, SendResponse{Message: msg})
}

// Poll returns messages after the client's cursor and refreshes its
// presence. An unknown or absent cursor yields the full log.
// GET /api/messages?userId=&username=&lastMessageId=
func (h *PollHandlers) Poll(c *gin.Context) {
	if id := c.Query("userId"); id != "" {
		h.store.TouchUser(id)
	} else if name := c.Query("username"); name != "" {
		if user, ok := h.store.UserByName(name); ok {
			h.store.TouchUser(user.ID)
		}
	}

	c.JSON(http.StatusOK, PollResponse{
		Messages:    h.store.MessagesAfter(c.Query("lastMessageId")),
		OnlineUsers: h.store.OnlineUsers(),
		Stats:       h.store.Stats(),
	})
}

// Leave removes a user and records a leave notice.
// POST /api/leave
func (h *PollHandlers) Leave(c *gin.Context) {
	var req LeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, ok := h.store.User(req.UserID)
	if !ok && req.Username != "" {
		user, ok = h.store.UserByName(req.Username)
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	h.store.RemoveUser(user.ID)
	h.store.AddSystemMessage(user.Username + " left the chat")
	h.log.Info().Str("username", user.Username).Msg("user left via polling")

	c.Status(http.StatusNoContent)
}

// Stats reports current counts.
// GET /api/stats
func (h *PollHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Stats())
}
