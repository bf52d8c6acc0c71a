package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/chat"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

var chatEngine = &chat.Engine{
	FAQs:         mongo.GetActiveFAQs,
	Order:        mongo.GetOrderByNumber,
	CreateTicket: mongo.CreateTicket,
	Record:       mongo.RecordChatInteraction,
}

// ChatMessage answers one widget message. The response is a list for
// compatibility with the widget, which renders each entry as a bubble.
func ChatMessage(c *gin.Context) {
	config, err := mongo.GetStoreConfig(c.Request.Context())
	if err == nil && !config.ChatEnabled {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Chat is disabled", nil))
		return
	}

	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("message and sender_id are required", nil))
		return
	}

	reply := chatEngine.Reply(c.Request.Context(), req.SenderID, req.Message)
	c.JSON(http.StatusOK, global.SuccessResponse([]models.ChatReply{reply}))
}
