package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"auctionhub/internal/model"
)

const listingKey = "auction:listing"

type AuctionCache struct {
	client     *redisv9.Client
	listingTTL time.Duration
}

func NewAuctionCache(client *redisv9.Client, listingTTL time.Duration) *AuctionCache {
	if listingTTL <= 0 {
		listingTTL = 30 * time.Second
	}
	return &AuctionCache{
		client:     client,
		listingTTL: listingTTL,
	}
}

func (c *AuctionCache) GetListing(ctx context.Context) ([]model.Auction, bool, error) {
	raw, err := c.client.Get(ctx, listingKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get listing failed: %w", err)
	}

	var auctions []model.Auction
	if err := json.Unmarshal([]byte(raw), &auctions); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached listing failed: %w", err)
	}
	return auctions, true, nil
}

func (c *AuctionCache) SetListing(ctx context.Context, auctions []model.Auction) error {
	payload, err := json.Marshal(auctions)
	if err != nil {
		return fmt.Errorf("marshal listing cache failed: %w", err)
	}
	if err := c.client.Set(ctx, listingKey, payload, c.listingTTL).Err(); err != nil {
		return fmt.Errorf("redis set listing failed: %w", err)
	}
	return nil
}

func (c *AuctionCache) DeleteListing(ctx context.Context) error {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		return fmt.Errorf("redis delete listing failed: %w", err)
	}
	return nil
}
