package media

import "time"

// Image is a recipe picture decoded from a data URI and stored on local disk.
type Image struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID   int64     `gorm:"column:owner_id;not null;index" json:"owner_id"`
	FilePath  string    `gorm:"column:file_path;not null" json:"-"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	MimeType  string    `gorm:"column:mime_type;size:50" json:"mime_type"`
	Size      int64     `gorm:"column:size" json:"size"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Image) TableName() string { return "media_images" }
