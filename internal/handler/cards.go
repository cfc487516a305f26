// Package handler implements the HTTP operations on the card surface.
//
// Every operation here runs behind the basic-auth and role middleware, so a
// request that reaches a handler always carries an authenticated CARD-OWNER
// principal. The handlers' only access-control job is ownership: each store
// call is scoped to the principal's username, and a card that exists but
// belongs to someone else produces the same 404 as one that never existed.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/dollarcard/internal/middleware"
	"github.com/example/dollarcard/internal/models"
	"github.com/example/dollarcard/internal/storage"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	store storage.CardStore
}

// CardRequest is the body accepted by create and update. Any id or owner
// fields a client submits are simply not bound: the id comes from the path
// or the store, the owner always from the authenticated principal.
type CardRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
}

func NewCardHandler(store storage.CardStore) *CardHandler {
	return &CardHandler{store: store}
}

// Register mounts the card routes on the given group.
func (h *CardHandler) Register(g *gin.RouterGroup) {
	g.GET("/:id", h.GetCard)
	g.POST("", h.CreateCard)
	g.GET("", h.ListCards)
	g.PUT("/:id", h.UpdateCard)
	g.DELETE("/:id", h.DeleteCard)
}

func (h *CardHandler) GetCard(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	id, ok := cardID(c)
	if !ok {
		return
	}

	card, err := h.store.FindByIDAndOwner(c.Request.Context(), id, principal.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get card")
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	card := models.NewCard(*req.Amount, principal.Username)
	if err := h.store.Insert(c.Request.Context(), card); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create card")
		return
	}

	c.Header("Location", fmt.Sprintf("/dollarcards/%d", *card.ID))
	c.Status(http.StatusCreated)
}

func (h *CardHandler) ListCards(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	page := storage.PageRequest{
		Page: intQuery(c, "page", 0),
		Size: intQuery(c, "size", 0),
		Sort: parseSort(c.Query("sort")),
	}

	cards, err := h.store.FindPageByOwner(c.Request.Context(), principal.Username, page)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list cards")
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) UpdateCard(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	id, ok := cardID(c)
	if !ok {
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	// Owner-scoped existence check before the id-keyed upsert: the store's
	// Save mutates by id alone, so ownership has to be proven here first.
	existing, err := h.store.FindByIDAndOwner(c.Request.Context(), id, principal.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update card")
		return
	}

	updated := &models.Card{ID: existing.ID, Amount: *req.Amount, Owner: existing.Owner}
	if err := h.store.Save(c.Request.Context(), updated); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update card")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	id, ok := cardID(c)
	if !ok {
		return
	}

	exists, err := h.store.ExistsByIDAndOwner(c.Request.Context(), id, principal.Username)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete card")
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.store.DeleteByID(c.Request.Context(), id); err != nil {
		// The existence check just passed; a vanished row still maps to 404.
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete card")
		return
	}

	c.Status(http.StatusNoContent)
}

// cardID parses the id path parameter, writing a 400 on malformed input.
func cardID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid card id")
		return 0, false
	}
	return id, true
}

// intQuery parses an integer query parameter, falling back on absence or
// garbage.
func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// parseSort parses a "field,dir" query value. A bare field sorts ascending;
// an empty value returns the zero Sort, which the store resolves to its
// amount-descending default.
func parseSort(raw string) storage.Sort {
	if raw == "" {
		return storage.Sort{}
	}
	field, dir, _ := strings.Cut(raw, ",")
	return storage.Sort{
		Field:      field,
		Descending: strings.EqualFold(dir, "desc"),
	}
}
