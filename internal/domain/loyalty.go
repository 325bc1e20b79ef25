package domain

import "time"

const (
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

// TierFor maps a points balance to a loyalty tier.
func TierFor(points int) string {
	switch {
	case points >= 2000:
		return TierGold
	case points >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}

type LoyaltyCard struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	Number     string    `json:"number"`
	HolderName string    `json:"holder_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Points     int       `json:"points"`
	Tier       string    `json:"tier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LoyaltyTransaction struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
