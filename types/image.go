package types

// NodeTypeImage 文档中图片节点的类型名
const NodeTypeImage = "image"

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ImageAttrs 图片节点的持久化属性。
// Width/Height 同为 0 表示未测量（按固有尺寸展示），
// 否则两者均为正且满足最大宽度约束。
type ImageAttrs struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Align  Align  `json:"align"`
}

// Measured 尺寸信息是否可用
func (a ImageAttrs) Measured() bool {
	return a.Width > 0 && a.Height > 0
}
