package entity

import "time"

// Session backs one issued token; ID is the token's jti.
type Session struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    uint       `gorm:"not null;index"`
	ExpiresAt time.Time  `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Models lists every table the application migrates.
func Models() []any {
	return []any{&User{}, &Product{}, &CartLine{}, &Order{}, &Session{}}
}
