package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"auctionhub/internal/model"
)

var ErrNegativeBid = errors.New("bids must be non-negative")

type AuctionStore interface {
	Create(auction *model.Auction) error
	ListAll() ([]model.Auction, error)
}

type ListingCache interface {
	GetListing(ctx context.Context) ([]model.Auction, bool, error)
	SetListing(ctx context.Context, auctions []model.Auction) error
	DeleteListing(ctx context.Context) error
}

type AuctionService struct {
	auctions  AuctionStore
	cache     ListingCache
	publisher AuditPublisher
}

type CreateAuctionInput struct {
	UserID      uint
	ItemName    string
	Description string
	StartingBid float64
	OpeningBid  float64
	ClosingBid  float64
	ClosingTime time.Time
}

func NewAuctionService(auctions AuctionStore, cache ListingCache, publisher AuditPublisher) *AuctionService {
	return &AuctionService{
		auctions:  auctions,
		cache:     cache,
		publisher: publisher,
	}
}

// Create persists an auction owned by the given user. The owner always
// comes from the verified token subject; nothing in the request body
// can override it.
func (s *AuctionService) Create(input CreateAuctionInput) (*model.Auction, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	itemName := strings.TrimSpace(input.ItemName)
	description := strings.TrimSpace(input.Description)
	if itemName == "" || description == "" || input.ClosingTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if input.StartingBid < 0 || input.OpeningBid < 0 || input.ClosingBid < 0 {
		return nil, ErrNegativeBid
	}

	auction := &model.Auction{
		ItemName:    itemName,
		Description: description,
		StartingBid: input.StartingBid,
		OpeningBid:  input.OpeningBid,
		ClosingBid:  input.ClosingBid,
		ClosingTime: input.ClosingTime,
		UserID:      input.UserID,
	}
	if err := s.auctions.Create(auction); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.DeleteListing(context.Background()); err != nil {
			log.Printf("invalidate listing cache failed: %v", err)
		}
	}
	if s.publisher != nil {
		event := model.AuditEvent{
			Action: model.AuditActionAuctionCreate,
			UserID: input.UserID,
			Detail: itemName,
		}
		if err := s.publisher.Publish(context.Background(), event); err != nil {
			log.Printf("publish audit event failed: %v", err)
		}
	}
	return auction, nil
}

// List returns every auction in storage order. Cache failures fall
// through to the store.
func (s *AuctionService) List(ctx context.Context) ([]model.Auction, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.GetListing(ctx)
		if err != nil {
			log.Printf("read listing cache failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	auctions, err := s.auctions.ListAll()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetListing(ctx, auctions); err != nil {
			log.Printf("set listing cache failed: %v", err)
		}
	}
	return auctions, nil
}
