package layout

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/michaelaaronlevy/grid-ripper/model"
)

func TestNewRow(t *testing.T) {
	r := NewRow(model.Fragment{Text: "x", X: 10, Y: 50, Width: 6, FontSize: 12, Rotation: 89.6})

	if r.YStart != 50 || r.XStart != 10 || r.XEnd != 16 {
		t.Errorf("Unexpected position: %+v", r)
	}
	if r.Rotation != 90 {
		t.Errorf("Expected rotation 90, got %d", r.Rotation)
	}
	if r.YSmooth != NoSmooth {
		t.Errorf("Expected unsmoothed row, got y_smooth %v", r.YSmooth)
	}
}

func TestNewRowFromGroup(t *testing.T) {
	group := []model.Fragment{
		{Text: "ca", X: 20, Y: 101, Width: 10, FontSize: 10, Rotation: 0},
		{Text: "fe\u0301", X: 30, Y: 100, Width: 12, FontSize: 14, Rotation: 90},
	}

	r := NewRowFromGroup(group)
	if r.YStart != 100 {
		t.Errorf("Expected y_start 100, got %v", r.YStart)
	}
	if r.XStart != 20 || r.XEnd != 42 {
		t.Errorf("Expected x 20..42, got %v..%v", r.XStart, r.XEnd)
	}
	if r.FontSize != 10 || r.Rotation != 0 {
		t.Errorf("Expected first fragment's font and rotation, got %v/%d", r.FontSize, r.Rotation)
	}
	if r.Content != "café" {
		t.Errorf("Expected NFC 'café', got %q", r.Content)
	}
}

func TestNewRowFromGroup_Empty(t *testing.T) {
	if r := NewRowFromGroup(nil); r != nil {
		t.Errorf("Expected nil row, got %+v", r)
	}
}

func TestNewRow_NegativeWidth(t *testing.T) {
	r := NewRow(model.Fragment{Text: "x", X: 10, Width: -4})
	if r.XStart > r.XEnd {
		t.Errorf("x_start %v > x_end %v", r.XStart, r.XEnd)
	}
}

func TestRowSmooth(t *testing.T) {
	tests := []struct {
		name    string
		prev    *Row
		yStart  float64
		wantYSm float64
	}{
		{"first row", nil, 100, 100},
		{"within tolerance", &Row{YSmooth: 100}, 101.9, 100},
		{"at tolerance", &Row{YSmooth: 100}, 102, 102},
		{"above previous", &Row{YSmooth: 100}, 95, 100},
		{"far below", &Row{YSmooth: 100}, 120, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Row{YStart: tt.yStart, YSmooth: NoSmooth}
			r.Smooth(tt.prev)
			if r.YSmooth != tt.wantYSm {
				t.Errorf("Expected y_smooth %v, got %v", tt.wantYSm, r.YSmooth)
			}
		})
	}
}

func TestCompare_KeyPrecedence(t *testing.T) {
	base := Row{YSmooth: 10, YStart: 10, XStart: 10, XEnd: 20, FontSize: 12, Rotation: 0, Content: "m"}

	tweaks := []struct {
		name string
		edit func(r *Row)
	}{
		{"y_smooth", func(r *Row) { r.YSmooth = 11; r.YStart = 0 }},
		{"y_start", func(r *Row) { r.YStart = 11; r.XStart = 0 }},
		{"x_start", func(r *Row) { r.XStart = 11; r.XEnd = 0 }},
		{"x_end", func(r *Row) { r.XEnd = 21; r.FontSize = 0 }},
		{"font_size", func(r *Row) { r.FontSize = 13; r.Rotation = -90 }},
		{"rotation", func(r *Row) { r.Rotation = 90; r.Content = "a" }},
		{"content", func(r *Row) { r.Content = "z" }},
	}

	for _, tt := range tweaks {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			b := base
			tt.edit(&b)
			if Compare(&a, &b) != -1 || Compare(&b, &a) != 1 {
				t.Errorf("Expected %s to decide the order", tt.name)
			}
		})
	}

	a, b := base, base
	if Compare(&a, &b) != 0 {
		t.Error("Expected equal rows to compare 0")
	}
}

func randomRow(rng *rand.Rand) *Row {
	return &Row{
		YSmooth:  float64(rng.Intn(3)),
		YStart:   float64(rng.Intn(3)),
		XStart:   float64(rng.Intn(3)),
		XEnd:     float64(rng.Intn(3)),
		FontSize: float64(rng.Intn(2)),
		Rotation: rng.Intn(2) * 90,
		Content:  string(rune('a' + rng.Intn(3))),
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([]*Row, 300)
	for i := range rows {
		rows[i] = randomRow(rng)
	}

	for _, a := range rows {
		for _, b := range rows {
			ab, ba := Less(a, b), Less(b, a)
			if *a == *b {
				if ab || ba {
					t.Fatalf("Equal rows ordered: %+v", *a)
				}
				continue
			}
			if ab == ba {
				t.Fatalf("Distinct rows not strictly ordered: %+v vs %+v", *a, *b)
			}
		}
	}
}

func TestSmooth_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows := make([]*Row, 200)
	for i := range rows {
		rows[i] = &Row{YStart: float64(rng.Intn(400)) / 4, XStart: float64(rng.Intn(500)), YSmooth: NoSmooth}
	}
	sort.SliceStable(rows, func(i, j int) bool { return Less(rows[i], rows[j]) })

	pass := func() []float64 {
		rows[0].Smooth(nil)
		for i := 1; i < len(rows); i++ {
			rows[i].Smooth(rows[i-1])
		}
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = r.YSmooth
		}
		return out
	}

	first := pass()
	second := pass()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Row %d: y_smooth %v then %v", i, first[i], second[i])
		}
	}
}
