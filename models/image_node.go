package models

import "time"

type ImageNode struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	DocID     string    `gorm:"column:doc_id;type:varchar(64);not null;index:idx_doc_pos,priority:1" json:"doc_id"`
	Pos       int       `gorm:"column:pos;not null;index:idx_doc_pos,priority:2" json:"pos"`
	Type      string    `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Src       string    `gorm:"column:src;type:varchar(1024);not null" json:"src"`
	Alt       string    `gorm:"column:alt;type:varchar(255)" json:"alt"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Width     int       `gorm:"column:width;not null" json:"width"`
	Height    int       `gorm:"column:height;not null" json:"height"`
	Align     string    `gorm:"column:align;type:varchar(16);not null" json:"align"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName 显式指定表名（推荐）
func (ImageNode) TableName() string {
	return "image_node"
}
