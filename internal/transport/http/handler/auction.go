package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auctionhub/internal/app"
	"auctionhub/internal/transport/http/response"
)

type AuctionHandler struct {
	auctionService *app.AuctionService
}

// Bid fields are pointers so presence is checked rather than
// truthiness: an explicit zero bid is valid, an omitted field is not.
type CreateAuctionRequest struct {
	ItemName    string    `json:"itemName" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartingBid *float64  `json:"startingBid" binding:"required"`
	OpeningBid  *float64  `json:"openingBid" binding:"required"`
	ClosingBid  *float64  `json:"closingBid" binding:"required"`
	ClosingTime time.Time `json:"closingTime" binding:"required"`
}

func NewAuctionHandler(auctionService *app.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

func (h *AuctionHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	var req CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required")
		return
	}

	auction, err := h.auctionService.Create(app.CreateAuctionInput{
		UserID:      userID,
		ItemName:    req.ItemName,
		Description: req.Description,
		StartingBid: *req.StartingBid,
		OpeningBid:  *req.OpeningBid,
		ClosingBid:  *req.ClosingBid,
		ClosingTime: req.ClosingTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrNegativeBid):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "auction created successfully",
		"auction": auction,
	})
}

// List is unauthenticated and returns every auction in storage order.
func (h *AuctionHandler) List(c *gin.Context) {
	auctions, err := h.auctionService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "server error")
		return
	}

	c.JSON(http.StatusOK, auctions)
}
