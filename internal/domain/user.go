package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	Department   string    `json:"department" gorm:"size:100"`
	Bio          string    `json:"bio" gorm:"type:text"`
	Interests    string    `json:"interests" gorm:"size:300"`
	SessionToken string    `json:"-" gorm:"size:128;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// InterestList splits the stored comma-delimited interests string into
// individual tags, dropping empty entries.
func (u *User) InterestList() []string {
	if u.Interests == "" {
		return nil
	}
	parts := strings.Split(u.Interests, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// AddInterest appends a tag to the delimited interests string.
func (u *User) AddInterest(interest string) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return
	}
	if u.Interests == "" {
		u.Interests = interest
		return
	}
	u.Interests = u.Interests + ", " + interest
}
