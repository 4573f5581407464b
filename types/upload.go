package types

// UploadResult 上传能力返回的结果。能力返回裸字符串时只填 Src；
// 返回结构化结果时 Extra 原样携带附加字段（如 width/height/image_id）。
// 合并进节点属性后即丢弃。
type UploadResult struct {
	Src   string         `json:"src"`
	Extra map[string]any `json:"extra,omitempty"`
}

// ExtraInt 从附加字段里取整数（JSON 反序列化后数字是 float64）
func (r *UploadResult) ExtraInt(key string) (int, bool) {
	if r == nil || r.Extra == nil {
		return 0, false
	}
	switch v := r.Extra[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

type UploadNodeResp struct {
	NodeID string `json:"node_id"`
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
