package model

import "github.com/haierkeys/fast-note-history-service/pkg/timex"

const TableNameUser = "user"

// User mapped to table <user>
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;size:255;index:idx_user_email" json:"email"`
	Username  string     `gorm:"column:username;size:64;index:idx_user_username" json:"username"`
	Password  string     `gorm:"column:password;size:255" json:"password"`
	Avatar    string     `gorm:"column:avatar;size:512" json:"avatar"`
	History   string     `gorm:"column:history;type:text" json:"history"` // JSON encoded []HistoryItem
	IsDeleted int64      `gorm:"column:is_deleted;not null;default:0" json:"isDeleted"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
