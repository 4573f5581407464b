package service

import (
	"Inkpix/config"
	"Inkpix/document"
	"Inkpix/pkg/blob"
	"Inkpix/pkg/log"
	"Inkpix/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoUploader 未注入上传能力，属配置错误，调用时立即返回，不重试
var ErrNoUploader = errors.New("uploader capability is required")

// Payload 交给上传能力的载荷。Data 为物化后的文件字节
// （src 非本地引用时为空，由能力自行拉取），Src 始终携带原始来源作为上下文。
type Payload struct {
	Data        []byte
	Filename    string
	ContentType string
	Src         string
}

// Uploader 注入的上传能力。每次 Upload 调用恰好被调用一次，
// 超时策略完全由实现方自定。
type Uploader interface {
	Upload(ctx context.Context, p Payload) (*types.UploadResult, error)
}

// ErrorCallback 上传失败或图片加载失败时的可选回调
type ErrorCallback func(p Payload, err error)

var _ IUploadService = (*UploadService)(nil)

type IUploadService interface {
	// Upload 执行一次上传。eager 表示预插入上传（此时失败不删节点）。
	// 配置了错误回调时失败被吞掉，返回 (nil, nil)。
	Upload(ctx context.Context, src, name string, eager bool) (*types.UploadResult, error)
}

type UploadService struct {
	Uploader      Uploader
	Blobs         *blob.Store
	Document      document.Commander
	Options       *config.Upload
	OnUploadError ErrorCallback
}

func NewUploadService(up Uploader, blobs *blob.Store, doc document.Commander, opts *config.Upload) *UploadService {
	return &UploadService{
		Uploader: up,
		Blobs:    blobs,
		Document: doc,
		Options:  opts,
	}
}

func (s *UploadService) Upload(ctx context.Context, src, name string, eager bool) (*types.UploadResult, error) {
	if s.Uploader == nil {
		return nil, ErrNoUploader
	}

	p := Payload{Src: src, Filename: name}
	if blob.IsRef(src) {
		entry, ok := s.Blobs.Resolve(src)
		if !ok {
			// 物化失败按上传失败处理
			return s.fail(ctx, p, src, eager, fmt.Errorf("local reference revoked: %s", src))
		}
		p.Data = entry.Data
		p.ContentType = entry.ContentType
		if p.Filename == "" {
			p.Filename = entry.Name
		}
	}
	if s.Options.UploadType != config.UploadTypeFile {
		// blob 形态不携带文件名
		p.Filename = ""
	}

	res, err := s.Uploader.Upload(ctx, p)
	if err != nil {
		return s.fail(ctx, p, src, eager, err)
	}
	if res == nil {
		res = &types.UploadResult{}
	}
	if res.Src == "" {
		res.Src = src
	}
	return res, nil
}

func (s *UploadService) fail(ctx context.Context, p Payload, src string, eager bool, err error) (*types.UploadResult, error) {
	log.L.Warn("image upload failed",
		zap.String("src", src),
		zap.Bool("eager", eager),
		zap.Error(err),
	)

	if s.Options.DeleteFailedUpload && !eager {
		if derr := s.deleteFirstBySrc(ctx, src); derr != nil {
			log.L.Warn("delete failed-upload node", zap.String("src", src), zap.Error(derr))
		}
	}
	if s.OnUploadError != nil {
		s.OnUploadError(p, err)
		return nil, nil
	}
	return nil, err
}

// deleteFirstBySrc 删除第一个 src 相同的节点。按属性相等匹配，
// 重复粘贴产生同 src 节点时只会命中其一。
func (s *UploadService) deleteFirstBySrc(ctx context.Context, src string) error {
	refs, err := s.Document.FindNodesOfType(ctx, types.NodeTypeImage)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if ref.Attrs.Src == src {
			return s.Document.DeleteNode(ctx, ref.ID)
		}
	}
	return nil
}
