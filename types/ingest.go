package types

// IngestFile 来自选择器 / 粘贴 / 拖拽的原始文件
type IngestFile struct {
	Name string
	Data []byte
}

// LocalImage 已加载可测量的本地图片句柄。
// Src 为可撤销本地引用或已上传地址；零值句柄表示该文件被丢弃。
type LocalImage struct {
	Src      string
	Name     string
	Width    int
	Height   int
	Uploaded *UploadResult // 预插入上传的结果，未预上传时为 nil
}

// Empty 文件在摄取阶段被丢弃（加载失败或预上传无结果）
func (h LocalImage) Empty() bool {
	return h.Src == "" && h.Uploaded == nil
}

type IngestResp struct {
	Inserted int `json:"inserted"`
	Dropped  int `json:"dropped"`
}
