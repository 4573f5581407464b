package service

import (
	"Inkpix/config"
	"Inkpix/document"
	"Inkpix/pkg/sizing"
	"Inkpix/types"
	"context"
)

var _ IInsertService = (*InsertService)(nil)

type IInsertService interface {
	// InsertBatch 把非空句柄整理成节点属性后一次性插入文档，
	// 返回实际插入的节点数。全部为空时不触碰文档。
	InsertBatch(ctx context.Context, docID string, handles []types.LocalImage, pos int) (int, error)
}

type InsertService struct {
	Document document.Commander
	Options  *config.Upload
}

func NewInsertService(doc document.Commander, opts *config.Upload) *InsertService {
	return &InsertService{Document: doc, Options: opts}
}

func (s *InsertService) InsertBatch(ctx context.Context, docID string, handles []types.LocalImage, pos int) (int, error) {
	nodes := make([]types.ImageAttrs, 0, len(handles))

	for _, h := range handles {
		if h.Empty() {
			// 被丢弃的文件不插占位节点
			continue
		}

		w, ht := sizing.Correct(h.Width, h.Height, s.Options.MaxWidth())
		attrs := types.ImageAttrs{
			Src:    h.Src,
			Name:   h.Name,
			Width:  w,
			Height: ht,
			Align:  types.AlignCenter,
		}

		// 上传已产出的属性优先于本地测量
		if h.Uploaded != nil {
			if h.Uploaded.Src != "" {
				attrs.Src = h.Uploaded.Src
			}
			uw, wok := h.Uploaded.ExtraInt("width")
			uh, hok := h.Uploaded.ExtraInt("height")
			if wok && hok {
				attrs.Width, attrs.Height = sizing.Correct(uw, uh, s.Options.MaxWidth())
			}
		}

		nodes = append(nodes, attrs)
	}

	if len(nodes) == 0 {
		return 0, nil
	}
	return len(nodes), s.Document.Insert(ctx, docID, nodes, pos)
}
