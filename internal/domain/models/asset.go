// internal/domain/models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetRecord is the embedded metadata for one uploaded file.
//
// Path is stored relative to the upload root; clients build the absolute
// URL by prefixing the API base URL. An empty Path means the slot is empty.
type AssetRecord struct {
	Filename     string              `bson:"filename,omitempty" json:"filename,omitempty"`
	OriginalName string              `bson:"original_name,omitempty" json:"originalName,omitempty"`
	Path         string              `bson:"path,omitempty" json:"relativePath,omitempty"`
	MimeType     string              `bson:"mime_type,omitempty" json:"mimetype,omitempty"`
	Size         int64               `bson:"size,omitempty" json:"size,omitempty"`
	UploadedAt   *time.Time          `bson:"uploaded_at,omitempty" json:"uploadedAt,omitempty"`
	UploadedBy   *primitive.ObjectID `bson:"uploaded_by,omitempty" json:"uploadedBy,omitempty"`
}

// IsEmpty reports whether the asset slot holds no file.
func (a AssetRecord) IsEmpty() bool {
	return a.Path == ""
}
