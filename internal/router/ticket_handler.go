package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

func parseTicketNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("ticketNumber"), 10, 64)
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid ticket number", []global.ValidationError{
			{Field: "ticketNumber", Message: "Must be a positive integer", Code: "invalid_format"},
		}))
		return 0, false
	}
	return number, true
}

func GetAllTickets(c *gin.Context) {
	status := c.Query("estado")
	if status != "" && !models.IsValidTicketStatus(status) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid status filter", []global.ValidationError{
			{Field: "estado", Message: "Unknown ticket status", Code: "invalid_value"},
		}))
		return
	}

	tickets, err := mongo.GetAllTickets(c.Request.Context(), status)
	if err != nil {
		logger.L.Errorf("failed to list tickets: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get tickets", nil))
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(len(tickets)))
	c.JSON(http.StatusOK, global.SuccessResponse(tickets))
}

func GetTicketByNumber(c *gin.Context) {
	number, ok := parseTicketNumber(c)
	if !ok {
		return
	}

	ticket, err := mongo.GetTicketByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, mongo.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Ticket not found", nil))
			return
		}
		logger.L.Errorf("failed to fetch ticket %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch ticket", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(ticket))
}

func UpdateTicketStatus(c *gin.Context) {
	number, ok := parseTicketNumber(c)
	if !ok {
		return
	}

	var req models.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("estado is required", nil))
		return
	}
	if !models.IsValidTicketStatus(req.Estado) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid ticket status", []global.ValidationError{
			{Field: "estado", Message: "Unknown ticket status", Code: "invalid_value"},
		}))
		return
	}

	ticket, err := mongo.UpdateTicketStatus(c.Request.Context(), number, req.Estado)
	if err != nil {
		if errors.Is(err, mongo.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Ticket not found", nil))
			return
		}
		logger.L.Errorf("failed to update ticket %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update ticket", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(ticket))
}

func UpdateTicketNotes(c *gin.Context) {
	number, ok := parseTicketNumber(c)
	if !ok {
		return
	}

	var req models.UpdateTicketNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("notas is required", nil))
		return
	}

	ticket, err := mongo.UpdateTicketNotes(c.Request.Context(), number, req.Notas)
	if err != nil {
		if errors.Is(err, mongo.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Ticket not found", nil))
			return
		}
		logger.L.Errorf("failed to update ticket %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update ticket", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(ticket))
}

func DeleteTicket(c *gin.Context) {
	number, ok := parseTicketNumber(c)
	if !ok {
		return
	}

	if err := mongo.DeleteTicket(c.Request.Context(), number); err != nil {
		if errors.Is(err, mongo.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Ticket not found", nil))
			return
		}
		logger.L.Errorf("failed to delete ticket %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete ticket", nil))
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse("Ticket deleted"))
}
