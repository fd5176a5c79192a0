package subscription

import (
	"time"

	"foodgram/internal/domain/user"
)

// Subscription is a directed follow edge from Subscriber to Author.
type Subscription struct {
	ID           int64      `gorm:"primaryKey"`
	AuthorID     int64      `gorm:"not null;index;uniqueIndex:idx_subscription_pair,priority:1;check:chk_subscription_not_self,author_id <> subscriber_id"`
	SubscriberID int64      `gorm:"not null;uniqueIndex:idx_subscription_pair,priority:2"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	Author       *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Subscriber   *user.User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
