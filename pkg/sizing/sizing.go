package sizing

import "math"

// Correct 按最大显示宽度收缩图片尺寸，保持宽高比。
// 信息不足（任一边 <=0）时原样返回 0/0；对自身输出再调用结果不变。
// 调用方每次传入当前的最大宽度，不要缓存。
func Correct(width, height, maxWidth int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	ratio := float64(height) / float64(width)
	corrected := int(math.Round(float64(maxWidth) * ratio))
	if corrected < 1 {
		// 极端细长图不允许高度归零
		corrected = 1
	}
	return maxWidth, corrected
}
