package service

import (
	"Inkpix/config"
	"Inkpix/pkg/blob"
	"Inkpix/types"
	"context"
	"strings"
	"testing"
)

func newIngestPipeline(up Uploader, doc *fakeDoc, opts *config.Upload) (*IngestService, *blob.Store) {
	blobs := blob.NewStore()
	us := NewUploadService(up, blobs, doc, opts)
	ins := NewInsertService(doc, opts)
	return NewIngestService(us, ins, blobs, opts), blobs
}

// 场景 A：两个文件经选择器进入，懒上传模式下一次插入两个本地引用节点，保持输入顺序
func TestIngest_TwoFilesInsertedInOrder(t *testing.T) {
	doc := &fakeDoc{}
	s, _ := newIngestPipeline(&fakeUploader{}, doc, &config.Upload{})

	files := []types.IngestFile{
		{Name: "a.png", Data: pngBytes(t, 100, 50)},
		{Name: "b.png", Data: pngBytes(t, 60, 60)},
	}
	inserted, err := s.IngestAndInsert(context.Background(), "doc1", files, 3)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}
	if len(doc.inserts) != 1 {
		t.Fatalf("expected a single batched insert, got %d", len(doc.inserts))
	}
	batch := doc.inserts[0]
	if batch[0].Name != "a.png" || batch[1].Name != "b.png" {
		t.Fatalf("input order not preserved: %s, %s", batch[0].Name, batch[1].Name)
	}
	for _, n := range batch {
		if !strings.HasPrefix(n.Src, blob.Scheme) {
			t.Fatalf("lazy mode must insert local references, got %s", n.Src)
		}
	}
	if doc.insertPos[0] != 3 {
		t.Fatalf("insert position lost, got %d", doc.insertPos[0])
	}
}

// 坏文件：回调收到错误，文件被静默剔除，其余文件照常插入
func TestIngest_CorruptFileDropped(t *testing.T) {
	doc := &fakeDoc{}
	s, blobs := newIngestPipeline(&fakeUploader{}, doc, &config.Upload{})

	var cbErr error
	s.OnError = func(_ Payload, err error) { cbErr = err }

	files := []types.IngestFile{
		{Name: "bad.png", Data: []byte("definitely not an image")},
		{Name: "good.png", Data: pngBytes(t, 10, 10)},
	}
	inserted, err := s.IngestAndInsert(context.Background(), "doc1", files, 0)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}
	if cbErr == nil {
		t.Fatal("load-failure callback not invoked")
	}
	if doc.inserts[0][0].Name != "good.png" {
		t.Fatalf("wrong survivor: %s", doc.inserts[0][0].Name)
	}
	// 坏文件的引用必须被释放
	if blobs.Len() != 1 {
		t.Fatalf("expected 1 live reference, got %d", blobs.Len())
	}
}

// 预插入上传：插入的节点直接带远程地址，本地引用全部释放
func TestIngest_UploadBeforeInsert(t *testing.T) {
	doc := &fakeDoc{}
	up := &fakeUploader{fn: func(p Payload) (*types.UploadResult, error) {
		return &types.UploadResult{Src: "https://cdn/eager.png"}, nil
	}}
	s, blobs := newIngestPipeline(up, doc, &config.Upload{UploadBeforeInsert: true})

	files := []types.IngestFile{{Name: "a.png", Data: pngBytes(t, 20, 20)}}
	if _, err := s.IngestAndInsert(context.Background(), "doc1", files, 0); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if doc.inserts[0][0].Src != "https://cdn/eager.png" {
		t.Fatalf("expected remote src, got %s", doc.inserts[0][0].Src)
	}
	if blobs.Len() != 0 {
		t.Fatalf("eager upload must release local references, %d alive", blobs.Len())
	}
}

// 预插入上传无结果时文件被丢弃，不插占位节点
func TestIngest_EagerUploadNoResultDrops(t *testing.T) {
	doc := &fakeDoc{}
	up := &fakeUploader{fn: func(Payload) (*types.UploadResult, error) {
		return nil, context.DeadlineExceeded
	}}
	s, _ := newIngestPipeline(up, doc, &config.Upload{UploadBeforeInsert: true})

	files := []types.IngestFile{{Name: "a.png", Data: pngBytes(t, 20, 20)}}
	inserted, err := s.IngestAndInsert(context.Background(), "doc1", files, 0)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected 0 inserted, got %d", inserted)
	}
	if len(doc.inserts) != 0 {
		t.Fatalf("empty batch must not touch the document, got %d inserts", len(doc.inserts))
	}
}

// 场景 D：粘贴同时带 HTML 文本时图片被忽略，不发生插入
func TestIngest_PasteHTMLWins(t *testing.T) {
	doc := &fakeDoc{}
	s, _ := newIngestPipeline(&fakeUploader{}, doc, &config.Upload{})

	files := []types.IngestFile{{Name: "a.png", Data: pngBytes(t, 10, 10)}}
	inserted, err := s.IngestPaste(context.Background(), "doc1", files, "<p>hello</p>", 0)
	if err != nil {
		t.Fatalf("paste: %v", err)
	}
	if inserted != 0 || len(doc.inserts) != 0 {
		t.Fatalf("html must take precedence, inserted=%d inserts=%d", inserted, len(doc.inserts))
	}
}

// listen_paste=false 时粘贴完全不处理
func TestIngest_PasteDisabled(t *testing.T) {
	doc := &fakeDoc{}
	off := false
	s, _ := newIngestPipeline(&fakeUploader{}, doc, &config.Upload{ListenPaste: &off})

	files := []types.IngestFile{{Name: "a.png", Data: pngBytes(t, 10, 10)}}
	inserted, _ := s.IngestPaste(context.Background(), "doc1", files, "", 0)
	if inserted != 0 || len(doc.inserts) != 0 {
		t.Fatal("paste handling should be off")
	}
}
