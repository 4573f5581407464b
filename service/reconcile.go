package service

import (
	"Inkpix/config"
	"Inkpix/document"
	"Inkpix/pkg/blob"
	"Inkpix/pkg/log"
	"Inkpix/pkg/sizing"
	"Inkpix/types"
	"context"
	"net/url"
	"strings"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// nodeState 单个节点的瞬态上传状态，只有 Idle/Uploading 两态，
// 失败不落入单独状态，静默回到 Idle 等下一次触发重试
type nodeState struct {
	uploading atomic.Bool
}

var _ IReconcileService = (*ReconcileService)(nil)

type IReconcileService interface {
	// Reconcile 对一个节点评估上传状态并回写属性变化。
	// 节点属性变化或周期性触发时调用；同一节点并发触发时
	// 后来者观察到在途上传，只做尺寸修正。
	Reconcile(ctx context.Context, node document.NodeRef) error

	// Forget 节点销毁时清掉它的瞬态状态
	Forget(nodeID string)
}

type ReconcileService struct {
	Upload   IUploadService
	Document document.Commander
	Blobs    *blob.Store
	Options  *config.Upload

	// 每节点控制器，以稳定节点 ID 为键（位置会随编辑移动）
	states cmap.ConcurrentMap[string, *nodeState]
}

func NewReconcileService(up IUploadService, doc document.Commander, blobs *blob.Store, opts *config.Upload) *ReconcileService {
	return &ReconcileService{
		Upload:   up,
		Document: doc,
		Blobs:    blobs,
		Options:  opts,
		states:   cmap.New[*nodeState](),
	}
}

func (s *ReconcileService) state(nodeID string) *nodeState {
	if st, ok := s.states.Get(nodeID); ok {
		return st
	}
	st := &nodeState{}
	if !s.states.SetIfAbsent(nodeID, st) {
		st, _ = s.states.Get(nodeID)
	}
	return st
}

func (s *ReconcileService) Forget(nodeID string) {
	s.states.Remove(nodeID)
}

func (s *ReconcileService) Reconcile(ctx context.Context, node document.NodeRef) error {
	st := s.state(node.ID)

	// 规则一：在途上传，或已是可信远程地址，只修尺寸，不发起上传
	if st.uploading.Load() || (!blob.IsRef(node.Attrs.Src) && s.trusted(node.Attrs.Src)) {
		return s.correctSize(ctx, node)
	}

	// 规则二：置位后发起上传。CAS 失败说明另一次触发抢先，退回规则一
	if !st.uploading.CompareAndSwap(false, true) {
		return s.correctSize(ctx, node)
	}
	defer st.uploading.Store(false)

	res, err := s.Upload.Upload(ctx, node.Attrs.Src, node.Attrs.Name, false)
	if err != nil {
		// 删除/回调已在下层处理，属性保持原样，下次触发可重试
		return err
	}
	if res == nil {
		return nil
	}

	// 上传结果里的尺寸参与修正
	merged := node.Attrs
	if w, ok := res.ExtraInt("width"); ok {
		merged.Width = w
	}
	if h, ok := res.ExtraInt("height"); ok {
		merged.Height = h
	}
	cw, ch := sizing.Correct(merged.Width, merged.Height, s.Options.MaxWidth())

	// 新旧 src 相同不回写，避免冗余更新
	if res.Src == node.Attrs.Src {
		return nil
	}

	// 原始 src 胜过尺寸修正的任何同名字段
	align := merged.Align
	if align == "" {
		align = types.AlignCenter
	}
	update := map[string]any{
		"src":    res.Src,
		"alt":    merged.Alt,
		"name":   merged.Name,
		"width":  cw,
		"height": ch,
		"align":  string(align),
	}
	if err := s.Document.UpdateAttributes(ctx, node.ID, update); err != nil {
		return err
	}

	// src 换成远程地址后本地引用不再被文档持有
	if blob.IsRef(node.Attrs.Src) {
		s.Blobs.Revoke(node.Attrs.Src)
	}

	log.L.Info("node upload reconciled",
		zap.String("node_id", node.ID),
		zap.String("src", res.Src),
	)
	return nil
}

// correctSize 按当前最大宽度重算尺寸，有变化才发一次属性更新
func (s *ReconcileService) correctSize(ctx context.Context, node document.NodeRef) error {
	w, h := sizing.Correct(node.Attrs.Width, node.Attrs.Height, s.Options.MaxWidth())
	if w == node.Attrs.Width && h == node.Attrs.Height {
		return nil
	}
	return s.Document.UpdateAttributes(ctx, node.ID, map[string]any{
		"width":  w,
		"height": h,
	})
}

// trusted 远程地址域名检查。允许清单为空时信任全部 http(s) 地址，
// 非空时按主机名后缀匹配
func (s *ReconcileService) trusted(src string) bool {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	if len(s.Options.TrustedDomains) == 0 {
		return true
	}
	host := u.Hostname()
	for _, d := range s.Options.TrustedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
