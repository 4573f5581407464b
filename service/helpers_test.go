package service

import (
	"Inkpix/document"
	"Inkpix/types"
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeDoc 记录所有文档命令的内存假实现
type fakeDoc struct {
	mu        sync.Mutex
	inserts   [][]types.ImageAttrs
	insertPos []int
	updateIDs []string
	updates   []map[string]any
	deleted   []string
	nodes     []document.NodeRef
}

func (d *fakeDoc) Insert(_ context.Context, _ string, nodes []types.ImageAttrs, pos int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inserts = append(d.inserts, nodes)
	d.insertPos = append(d.insertPos, pos)
	return nil
}

func (d *fakeDoc) UpdateAttributes(_ context.Context, nodeID string, attrs map[string]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateIDs = append(d.updateIDs, nodeID)
	d.updates = append(d.updates, attrs)
	return nil
}

func (d *fakeDoc) DeleteNode(_ context.Context, nodeID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, nodeID)
	kept := d.nodes[:0]
	for _, n := range d.nodes {
		if n.ID != nodeID {
			kept = append(kept, n)
		}
	}
	d.nodes = kept
	return nil
}

func (d *fakeDoc) FindNodesOfType(_ context.Context, _ string) ([]document.NodeRef, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]document.NodeRef, len(d.nodes))
	copy(out, d.nodes)
	return out, nil
}

var _ document.Commander = (*fakeDoc)(nil)

// fakeUploader 可编程的上传能力。entered/release 用于卡住在途上传
type fakeUploader struct {
	calls   atomic.Int32
	fn      func(p Payload) (*types.UploadResult, error)
	entered chan struct{}
	release chan struct{}
}

func (u *fakeUploader) Upload(_ context.Context, p Payload) (*types.UploadResult, error) {
	u.calls.Add(1)
	if u.entered != nil {
		u.entered <- struct{}{}
	}
	if u.release != nil {
		<-u.release
	}
	if u.fn != nil {
		return u.fn(p)
	}
	return &types.UploadResult{Src: "https://cdn.example.com/uploaded.png"}, nil
}

// pngBytes 生成一张指定尺寸的真实 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
