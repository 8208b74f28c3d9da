package models

import (
	"time"
)

// Document status values. A document starts Pending and moves to Processed
// exactly once; there is no backwards transition.
const (
	StatusPending   = "Pending"
	StatusProcessed = "Processed"
)

// Document is one uploaded file plus its processing state. Location always
// points into the bucket matching Status; Fields stays empty until the
// document is Processed.
type Document struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(512);not null" json:"name"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:'Pending';index:idx_documents_status" json:"status"`
	Location  string    `gorm:"column:location;type:text" json:"location"`
	Fields    string    `gorm:"column:fields;type:text" json:"fields"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) IsProcessed() bool {
	return d.Status == StatusProcessed
}

// DocumentView is the read model returned by the API.
type DocumentView struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	URL    string `json:"url"`
	Fields string `json:"fields"`
}
