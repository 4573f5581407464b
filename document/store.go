package document

import (
	"Inkpix/dao"
	"Inkpix/models"
	"Inkpix/pkg/snowflake"
	"Inkpix/types"
	"context"
	"strconv"
	"time"
)

// Store Commander 的 MySQL 落地实现
type Store struct {
	Nodes *dao.ImageNodeDAO
}

var _ Commander = (*Store)(nil)

func NewStore(nodes *dao.ImageNodeDAO) *Store {
	return &Store{Nodes: nodes}
}

func (s *Store) Insert(ctx context.Context, docID string, attrs []types.ImageAttrs, pos int) error {
	if len(attrs) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]*models.ImageNode, 0, len(attrs))
	for i, a := range attrs {
		align := a.Align
		if align == "" {
			align = types.AlignCenter
		}
		rows = append(rows, &models.ImageNode{
			ID:        strconv.FormatInt(snowflake.GenNodeID(), 10),
			DocID:     docID,
			Pos:       pos + i,
			Type:      types.NodeTypeImage,
			Src:       a.Src,
			Alt:       a.Alt,
			Name:      a.Name,
			Width:     a.Width,
			Height:    a.Height,
			Align:     string(align),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return s.Nodes.CreateBatch(ctx, docID, pos, rows)
}

func (s *Store) UpdateAttributes(ctx context.Context, nodeID string, attrs map[string]any) error {
	return s.Nodes.UpdateByID(ctx, nodeID, attrs)
}

func (s *Store) DeleteNode(ctx context.Context, nodeID string) error {
	return s.Nodes.DeleteByID(ctx, nodeID)
}

func (s *Store) FindNodesOfType(ctx context.Context, typeName string) ([]NodeRef, error) {
	rows, err := s.Nodes.FindByType(ctx, typeName)
	if err != nil {
		return nil, err
	}
	refs := make([]NodeRef, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, NodeRef{
			ID:  r.ID,
			Pos: r.Pos,
			Attrs: types.ImageAttrs{
				Src:    r.Src,
				Alt:    r.Alt,
				Name:   r.Name,
				Width:  r.Width,
				Height: r.Height,
				Align:  types.Align(r.Align),
			},
		})
	}
	return refs, nil
}
