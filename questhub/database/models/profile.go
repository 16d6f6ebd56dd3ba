package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile is the display identity behind a wallet address.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:pr"`

	Wallet    string            `bun:"wallet,pk"`
	Username  string            `bun:"username,unique"`
	AvatarURL string            `bun:"avatar_url"`
	Socials   map[string]string `bun:"socials,type:jsonb"`
	CreatedAt time.Time         `bun:"created_at,notnull"`
	UpdatedAt time.Time         `bun:"updated_at,notnull"`
}
