package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/LovationAdmin/finance-tracker-api/models"
	"github.com/LovationAdmin/finance-tracker-api/services"
	"github.com/LovationAdmin/finance-tracker-api/utils"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Store *services.TransactionStore
	WS    *WSHandler
}

func NewTransactionHandler(store *services.TransactionStore, ws *WSHandler) *TransactionHandler {
	return &TransactionHandler{Store: store, WS: ws}
}

// ListTransactions returns every transaction, newest date first
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.List())
}

// CreateTransaction validates and stores a new transaction
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	tx, err := h.Store.Create(in)
	if err != nil {
		h.respondError(c, "", err)
		return
	}

	utils.LogTransactionAction("created", tx.ID, string(tx.Type), tx.Amount)
	h.WS.Broadcast(EventCreated, tx.ID)
	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id := c.Param("id")
	tx, err := h.Store.Get(id)
	if err != nil {
		h.respondError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateTransaction applies a partial update; id and createdAt in the body are ignored
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id := c.Param("id")
	in, ok := bindInput(c)
	if !ok {
		return
	}

	tx, err := h.Store.Update(id, in)
	if err != nil {
		h.respondError(c, id, err)
		return
	}

	utils.LogTransactionAction("updated", tx.ID, string(tx.Type), tx.Amount)
	h.WS.Broadcast(EventUpdated, tx.ID)
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.Delete(id); err != nil {
		h.respondError(c, id, err)
		return
	}

	utils.SafeInfo("Transaction %s deleted", id)
	h.WS.Broadcast(EventDeleted, id)
	c.Status(http.StatusNoContent)
}

// GetSummary returns income, expenses and net balance over all transactions
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Summary())
}

// GetCategorySummary returns totals grouped by type and category
func (h *TransactionHandler) GetCategorySummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Categories())
}

// SuggestCategory guesses a category for the title query parameter
func (h *TransactionHandler) SuggestCategory(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"title: required query parameter"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":    title,
		"category": services.SuggestCategory(title),
	})
}

// NotFound answers any unmatched route
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
	})
}

func bindInput(c *gin.Context) (models.TransactionInput, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"body: could not be read"}})
		return models.TransactionInput{}, false
	}

	in, err := models.ParseTransactionInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return models.TransactionInput{}, false
	}
	return in, true
}

func (h *TransactionHandler) respondError(c *gin.Context, id string, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Errors})
	case errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Transaction '%s' not found", id)})
	default:
		utils.SafeError("Transaction request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
