package service

import (
	"Inkpix/config"
	"Inkpix/pkg/blob"
	"Inkpix/pkg/log"
	"Inkpix/types"
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

var _ IIngestService = (*IngestService)(nil)

type IIngestService interface {
	// Ingest 并发加载一批文件，产出与输入同序的句柄集合；
	// 失败的文件变成零值句柄，不阻塞其余文件
	Ingest(ctx context.Context, files []types.IngestFile) []types.LocalImage

	// IngestAndInsert 摄取后交给插入协调器，一次性写入文档
	IngestAndInsert(ctx context.Context, docID string, files []types.IngestFile, pos int) (int, error)

	// IngestPaste 粘贴来源：HTML 文本优先，有 HTML 时图片全部忽略
	IngestPaste(ctx context.Context, docID string, files []types.IngestFile, html string, pos int) (int, error)

	// IngestDrop 拖拽来源
	IngestDrop(ctx context.Context, docID string, files []types.IngestFile, pos int) (int, error)
}

type IngestService struct {
	Upload  IUploadService
	Insert  IInsertService
	Blobs   *blob.Store
	Options *config.Upload
	OnError ErrorCallback
}

func NewIngestService(up IUploadService, ins IInsertService, blobs *blob.Store, opts *config.Upload) *IngestService {
	return &IngestService{
		Upload:  up,
		Insert:  ins,
		Blobs:   blobs,
		Options: opts,
	}
}

func (s *IngestService) Ingest(ctx context.Context, files []types.IngestFile) []types.LocalImage {
	out := make([]types.LocalImage, len(files))

	var wg conc.WaitGroup
	for i := range files {
		i := i
		wg.Go(func() {
			out[i] = s.ingestOne(ctx, files[i])
		})
	}
	wg.Wait()

	return out
}

func (s *IngestService) ingestOne(ctx context.Context, f types.IngestFile) types.LocalImage {
	ref := s.Blobs.Create(f.Data, f.Name)

	// 只读图头取尺寸，不解码全图
	cfg, format, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		log.L.Warn("image load failed", zap.String("name", f.Name), zap.Error(err))
		if s.OnError != nil {
			s.OnError(Payload{Data: f.Data, Filename: f.Name, Src: ref}, err)
		}
		s.Blobs.Revoke(ref)
		return types.LocalImage{}
	}

	h := types.LocalImage{
		Src:    ref,
		Name:   f.Name,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	if s.Options.UploadBeforeInsert {
		res, err := s.Upload.Upload(ctx, ref, f.Name, true)
		// 本地引用不会再被任何人持有
		s.Blobs.Revoke(ref)
		if err != nil || res == nil {
			return types.LocalImage{}
		}
		h.Src = res.Src
		h.Uploaded = res
	}

	log.L.Info("image ingested",
		zap.String("name", f.Name),
		zap.String("format", format),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return h
}

func (s *IngestService) IngestAndInsert(ctx context.Context, docID string, files []types.IngestFile, pos int) (int, error) {
	handles := s.Ingest(ctx, files)
	return s.Insert.InsertBatch(ctx, docID, handles, pos)
}

func (s *IngestService) IngestPaste(ctx context.Context, docID string, files []types.IngestFile, html string, pos int) (int, error) {
	if !s.Options.PasteEnabled() {
		return 0, nil
	}
	if html != "" {
		return 0, nil
	}
	return s.IngestAndInsert(ctx, docID, files, pos)
}

func (s *IngestService) IngestDrop(ctx context.Context, docID string, files []types.IngestFile, pos int) (int, error) {
	if !s.Options.DropEnabled() {
		return 0, nil
	}
	return s.IngestAndInsert(ctx, docID, files, pos)
}
