package media

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByURL(ctx context.Context, url string) (*Image, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, img *Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *repository) GetByURL(ctx context.Context, url string) (*Image, error) {
	var img Image
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Image{}).Error
}
