package domain

import "time"

type Document struct {
	ID          string    `json:"id" db:"id"`
	Entity      Kind      `json:"entity" db:"entity"`
	EntityID    string    `json:"entity_id" db:"entity_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	ContentType string    `json:"content_type" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	Content     []byte    `json:"-" db:"content"`
	UploadedBy  *int      `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
