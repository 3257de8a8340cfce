package domain

import "time"

// RevokedToken records a token ID (jti) that was invalidated by logout
// before its natural expiry. Rows older than ExpiresAt carry no information
// and are pruned lazily.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TokenID   string    `json:"tokenId" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
