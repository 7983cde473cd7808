package model

import "github.com/haierkeys/fast-note-history-service/pkg/timex"

const TableNameNote = "note"

// Note mapped to table <note>
type Note struct {
	ID        string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID   int64      `gorm:"column:owner_id;not null;index:idx_note_owner_parent,priority:1" json:"ownerId"`
	ParentID  *string    `gorm:"column:parent_id;size:36;index:idx_note_owner_parent,priority:2" json:"parentId"`
	Type      string     `gorm:"column:type;size:16;not null" json:"type"`
	Title     string     `gorm:"column:title;size:255" json:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	Tags      []string   `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false;index:idx_note_updated_at" json:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
