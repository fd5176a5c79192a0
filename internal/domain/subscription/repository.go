package subscription

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, subscriberID, authorID int64) (int64, error)
	Exists(ctx context.Context, subscriberID, authorID int64) (bool, error)
	// ListAuthors returns the authors subscriberID follows, most recent
	// subscription first, and the total count. limit <= 0 means no limit.
	ListAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]user.User, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	err := r.db.WithContext(ctx).Omit("Author", "Subscriber").Create(sub).Error
	if database.IsUniqueViolation(err) {
		return errDuplicate
	}
	return err
}

func (r *repository) Delete(ctx context.Context, subscriberID, authorID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&Subscription{})
	return res.RowsAffected, res.Error
}

func (r *repository) Exists(ctx context.Context, subscriberID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Model(&user.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var authors []user.User
	if err := q.Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
