package config

const (
	UploadTypeBlob = "blob" // 裸二进制
	UploadTypeFile = "file" // 带文件名的表单载荷

	BackendOss   = "oss"
	BackendMinio = "minio"
	BackendHTTP  = "http"

	defaultMaxWidth    = 375
	defaultAccept      = "image/*"
	defaultMaxFileSize = 10 << 20 // 10MB
)

// Upload 图片节点上传管线配置
type Upload struct {
	// Backend 上传能力后端: oss | minio | http
	Backend string `json:"backend" yaml:"backend"`

	// UploadBeforeInsert 选中文件后立即上传，否则插入文档后由 reconcile 懒上传
	UploadBeforeInsert bool `json:"upload_before_insert" yaml:"upload_before_insert"`

	// UploadType 传给上传能力的载荷形态: blob | file
	UploadType string `json:"upload_type" yaml:"upload_type"`

	// UploadMaxWidth 插入文档前的最大显示宽度，0 取默认 375
	UploadMaxWidth int `json:"upload_max_width" yaml:"upload_max_width"`

	// DeleteFailedUpload 上传失败时删除对应文档节点
	DeleteFailedUpload bool `json:"delete_failed_upload" yaml:"delete_failed_upload"`

	// Accept 文件选择器 MIME 过滤
	Accept string `json:"accept" yaml:"accept"`

	// ListenPaste / ListenDrop 是否处理粘贴 / 拖拽来源，缺省为 true
	ListenPaste *bool `json:"listen_paste" yaml:"listen_paste"`
	ListenDrop  *bool `json:"listen_drop" yaml:"listen_drop"`

	// TrustedDomains 已在这些域名上的远程图片不再重新上传；
	// 为空时信任全部 http(s) 远程地址
	TrustedDomains []string `json:"trusted_domains" yaml:"trusted_domains"`

	// Endpoint http 后端的上传接口地址
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Dedupe 按内容摘要走 redis 去重缓存
	Dedupe bool `json:"dedupe" yaml:"dedupe"`

	// MaxFileSize 单文件字节上限，0 取默认 10MB
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`
}

func (u *Upload) MaxWidth() int {
	if u.UploadMaxWidth <= 0 {
		return defaultMaxWidth
	}
	return u.UploadMaxWidth
}

func (u *Upload) AcceptFilter() string {
	if u.Accept == "" {
		return defaultAccept
	}
	return u.Accept
}

func (u *Upload) FileSizeLimit() int64 {
	if u.MaxFileSize <= 0 {
		return defaultMaxFileSize
	}
	return u.MaxFileSize
}

func (u *Upload) PasteEnabled() bool {
	return u.ListenPaste == nil || *u.ListenPaste
}

func (u *Upload) DropEnabled() bool {
	return u.ListenDrop == nil || *u.ListenDrop
}

func ProvideUploadConfig(cfg *Config) *Upload {
	if cfg.Upload == nil {
		return &Upload{}
	}
	return cfg.Upload
}
