// Package document 定义本子系统消费的文档命令面。
// 文档模型本身是外部协作方，这里只约定边界接口；
// 节点以稳定 ID 寻址（编辑会移动位置，位置不可作键）。
package document

import (
	"Inkpix/types"
	"context"
)

// NodeRef 一次查询时某个节点的快照
type NodeRef struct {
	ID    string           `json:"id"`
	Pos   int              `json:"pos"`
	Attrs types.ImageAttrs `json:"attrs"`
}

// Commander 文档命令面，所有操作视为原子的单节点操作
type Commander interface {
	// Insert 在 pos 处一次性插入一批节点，保持相对顺序
	Insert(ctx context.Context, docID string, nodes []types.ImageAttrs, pos int) error

	// UpdateAttributes 对单个节点做部分属性更新
	UpdateAttributes(ctx context.Context, nodeID string, attrs map[string]any) error

	// DeleteNode 删除单个节点
	DeleteNode(ctx context.Context, nodeID string) error

	// FindNodesOfType 按类型名枚举节点
	FindNodesOfType(ctx context.Context, typeName string) ([]NodeRef, error)
}
