package domain

import "time"

type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"senderId" gorm:"index:idx_messages_pair;not null"`
	ReceiverID uint      `json:"receiverId" gorm:"index:idx_messages_pair;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}
