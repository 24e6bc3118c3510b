package repository

import (
	"fmt"

	"gorm.io/gorm"

	"auctionhub/internal/model"
)

type AuctionRepository struct {
	db *gorm.DB
}

func NewAuctionRepository(db *gorm.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) Create(auction *model.Auction) error {
	if err := r.db.Create(auction).Error; err != nil {
		return fmt.Errorf("create auction failed: %w", err)
	}
	return nil
}

// ListAll returns every auction in insertion order.
func (r *AuctionRepository) ListAll() ([]model.Auction, error) {
	auctions := make([]model.Auction, 0)
	if err := r.db.Order("id ASC").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions failed: %w", err)
	}
	return auctions, nil
}
