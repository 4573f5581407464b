package dao

import (
	"Inkpix/models"
	"context"

	"gorm.io/gorm"
)

type ImageNodeDAO struct {
	Repo[models.ImageNode]
}

func NewImageNodeDAO(db *gorm.DB) *ImageNodeDAO {
	return &ImageNodeDAO{
		Repo: NewRepo[models.ImageNode](db),
	}
}

// CreateBatch 同一事务内批量写入，先给插入点之后的节点让位
func (d *ImageNodeDAO) CreateBatch(ctx context.Context, docID string, pos int, nodes []*models.ImageNode) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ImageNode{}).
			Where("doc_id = ? AND pos >= ?", docID, pos).
			UpdateColumn("pos", gorm.Expr("pos + ?", len(nodes))).Error
		if err != nil {
			return err
		}
		return tx.Create(nodes).Error
	})
}

// FindByType 按类型取某类节点，按文档内位置排序
func (d *ImageNodeDAO) FindByType(ctx context.Context, typeName string) ([]*models.ImageNode, error) {
	var nodes []*models.ImageNode
	err := d.Db.WithContext(ctx).
		Where("type = ?", typeName).
		Order("doc_id, pos").
		Find(&nodes).Error
	return nodes, err
}

func (d *ImageNodeDAO) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.ImageNode{}).
		Where("id = ?", id).
		Updates(data).Error
}

func (d *ImageNodeDAO) DeleteByID(ctx context.Context, id string) error {
	return d.Db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ImageNode{}).Error
}
