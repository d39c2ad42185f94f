package entity

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Mobile    string    `gorm:"size:15;uniqueIndex;not null" json:"mobile"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true" json:"-"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Relations (preload เฉพาะตอนจำเป็น)
	CartLines []CartLine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Orders    []Order    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Sessions  []Session  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// DisplayName falls back to the mobile number for accounts created without a name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Mobile
}
