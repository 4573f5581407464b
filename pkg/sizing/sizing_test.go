package sizing

import "testing"

func TestCorrect(t *testing.T) {
	cases := []struct {
		name                 string
		w, h, max            int
		wantW, wantH         int
	}{
		{"within limit", 300, 200, 375, 300, 200},
		{"exact limit", 375, 500, 375, 375, 500},
		{"shrinks wide", 750, 500, 375, 375, 250},
		{"shrinks with rounding", 1000, 800, 375, 375, 300},
		{"unmeasured stays unset", 0, 0, 375, 0, 0},
		{"half measured stays unset", 100, 0, 375, 0, 0},
		{"no limit", 2000, 1000, 0, 2000, 1000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotW, gotH := Correct(c.w, c.h, c.max)
			if gotW != c.wantW || gotH != c.wantH {
				t.Fatalf("Correct(%d,%d,%d) = %dx%d, want %dx%d",
					c.w, c.h, c.max, gotW, gotH, c.wantW, c.wantH)
			}
		})
	}
}

// 上界与宽高比
func TestCorrect_Bounds(t *testing.T) {
	for w := 1; w < 2000; w += 37 {
		for h := 1; h < 1500; h += 53 {
			gotW, gotH := Correct(w, h, 375)
			if gotW > 375 {
				t.Fatalf("width %d exceeds max for %dx%d", gotW, w, h)
			}
			if gotH <= 0 {
				t.Fatalf("height collapsed for %dx%d", w, h)
			}
		}
	}
}

// 幂等：对自身输出再修一次不得继续收缩
func TestCorrect_Idempotent(t *testing.T) {
	inputs := [][2]int{{750, 500}, {376, 1}, {1920, 1080}, {375, 375}, {0, 0}}
	for _, in := range inputs {
		w1, h1 := Correct(in[0], in[1], 375)
		w2, h2 := Correct(w1, h1, 375)
		if w1 != w2 || h1 != h2 {
			t.Fatalf("not idempotent for %v: %dx%d -> %dx%d", in, w1, h1, w2, h2)
		}
	}
}
