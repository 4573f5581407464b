package handler

import (
	"Inkpix/config"
	"Inkpix/document"
	"Inkpix/pkg/context"
	"Inkpix/pkg/response"
	"Inkpix/service"
	"Inkpix/types"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Node struct {
	Ingest    service.IIngestService
	Reconcile service.IReconcileService
	Document  document.Commander
	Config    *config.Config
}

func (n *Node) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/node")
	g.POST("/ingest", context.Wrap(n.IngestFiles))
	g.POST("/paste", context.Wrap(n.Paste))
	g.POST("/drop", context.Wrap(n.Drop))
	g.POST("/reconcile/:id", context.Wrap(n.ReconcileNode))
	g.DELETE("/:id", context.Wrap(n.Destroy))
	g.GET("/list", context.Wrap(n.List))
}

// IngestFiles 文件选择器来源：表单里的 images 全部进入摄取管线
func (n *Node) IngestFiles(c *gin.Context) error {
	files, docID, pos, err := n.collect(c)
	if err != nil {
		return err
	}

	inserted, err := n.Ingest.IngestAndInsert(c.Request.Context(), docID, files, pos)
	if err != nil {
		return err
	}
	response.Success(c, types.IngestResp{
		Inserted: inserted,
		Dropped:  len(files) - inserted,
	})
	return nil
}

// Paste 粘贴来源：同时携带 HTML 文本时图片被忽略
func (n *Node) Paste(c *gin.Context) error {
	files, docID, pos, err := n.collect(c)
	if err != nil {
		return err
	}

	html := c.PostForm("html")
	inserted, err := n.Ingest.IngestPaste(c.Request.Context(), docID, files, html, pos)
	if err != nil {
		return err
	}
	response.Success(c, types.IngestResp{
		Inserted: inserted,
		Dropped:  len(files) - inserted,
	})
	return nil
}

// Drop 拖拽来源
func (n *Node) Drop(c *gin.Context) error {
	files, docID, pos, err := n.collect(c)
	if err != nil {
		return err
	}

	inserted, err := n.Ingest.IngestDrop(c.Request.Context(), docID, files, pos)
	if err != nil {
		return err
	}
	response.Success(c, types.IngestResp{
		Inserted: inserted,
		Dropped:  len(files) - inserted,
	})
	return nil
}

// ReconcileNode 对单个节点跑一次上传状态评估
func (n *Node) ReconcileNode(c *gin.Context) error {
	nodeID := c.Param("id")

	refs, err := n.Document.FindNodesOfType(c.Request.Context(), types.NodeTypeImage)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if ref.ID != nodeID {
			continue
		}
		if err := n.Reconcile.Reconcile(c.Request.Context(), ref); err != nil {
			return err
		}
		response.Success(c, types.UploadNodeResp{
			NodeID: ref.ID,
			Src:    ref.Attrs.Src,
			Width:  ref.Attrs.Width,
			Height: ref.Attrs.Height,
		})
		return nil
	}
	return response.NewError(404, "node not found")
}

// Destroy 删除节点并清掉它的瞬态上传状态
func (n *Node) Destroy(c *gin.Context) error {
	nodeID := c.Param("id")
	if err := n.Document.DeleteNode(c.Request.Context(), nodeID); err != nil {
		return err
	}
	n.Reconcile.Forget(nodeID)
	response.Success(c, nil)
	return nil
}

func (n *Node) List(c *gin.Context) error {
	refs, err := n.Document.FindNodesOfType(c.Request.Context(), types.NodeTypeImage)
	if err != nil {
		return err
	}
	response.Success(c, refs)
	return nil
}

// collect 提取表单里的图片文件，做 MIME 过滤和大小拦截
func (n *Node) collect(c *gin.Context) ([]types.IngestFile, string, int, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "", 0, response.NewError(400, err.Error())
	}

	docID := c.PostForm("doc_id")
	if docID == "" {
		return nil, "", 0, response.NewError(400, "doc_id is required")
	}
	pos, _ := strconv.Atoi(c.PostForm("pos"))

	opts := n.Config.Upload
	maxSize := opts.FileSizeLimit()

	files := make([]types.IngestFile, 0, len(form.File["images"]))
	for _, header := range form.File["images"] {
		if header.Size > maxSize {
			return nil, "", 0, fmt.Errorf("image %s exceeds %d bytes", header.Filename, maxSize)
		}
		data, err := readAll(header)
		if err != nil {
			return nil, "", 0, response.NewError(500, err.Error())
		}
		if !acceptMatch(opts.AcceptFilter(), http.DetectContentType(data)) {
			return nil, "", 0, fmt.Errorf("unsupported content type for %s", header.Filename)
		}
		files = append(files, types.IngestFile{Name: header.Filename, Data: data})
	}
	return files, docID, pos, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// acceptMatch MIME 过滤，支持 image/* 通配和逗号分隔的列表
func acceptMatch(accept, contentType string) bool {
	for _, pat := range strings.Split(accept, ",") {
		pat = strings.TrimSpace(pat)
		if pat == "*/*" || pat == contentType {
			return true
		}
		if prefix, ok := strings.CutSuffix(pat, "/*"); ok &&
			strings.HasPrefix(contentType, prefix+"/") {
			return true
		}
	}
	return false
}
