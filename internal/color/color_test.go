package color

import (
	"math"
	"testing"
)

// TestU8ToF32 tests uint8 to float32 conversion.
func TestU8ToF32(t *testing.T) {
	tests := []struct {
		name  string
		input ColorU8
		want  ColorF32
	}{
		{
			name:  "black",
			input: ColorU8{R: 0, G: 0, B: 0, A: 0},
			want:  ColorF32{R: 0.0, G: 0.0, B: 0.0, A: 0.0},
		},
		{
			name:  "white",
			input: ColorU8{R: 255, G: 255, B: 255, A: 255},
			want:  ColorF32{R: 1.0, G: 1.0, B: 1.0, A: 1.0},
		},
		{
			name:  "mid values",
			input: ColorU8{R: 128, G: 64, B: 192, A: 255},
			want:  ColorF32{R: 128.0 / 255.0, G: 64.0 / 255.0, B: 192.0 / 255.0, A: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := U8ToF32(tt.input)
			if !colorF32Near(got, tt.want, 1e-6) {
				t.Errorf("U8ToF32(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestF32ToU8 tests float32 to uint8 conversion.
func TestF32ToU8(t *testing.T) {
	tests := []struct {
		name  string
		input ColorF32
		want  ColorU8
	}{
		{
			name:  "black",
			input: ColorF32{R: 0.0, G: 0.0, B: 0.0, A: 0.0},
			want:  ColorU8{R: 0, G: 0, B: 0, A: 0},
		},
		{
			name:  "white",
			input: ColorF32{R: 1.0, G: 1.0, B: 1.0, A: 1.0},
			want:  ColorU8{R: 255, G: 255, B: 255, A: 255},
		},
		{
			name:  "mid values with rounding",
			input: ColorF32{R: 0.5, G: 0.25, B: 0.75, A: 1.0},
			want:  ColorU8{R: 128, G: 64, B: 191, A: 255}, // 0.5*255=127.5→128, 0.25*255=63.75→64, 0.75*255=191.25→191
		},
		{
			name:  "clamping below 0",
			input: ColorF32{R: -0.1, G: 0.0, B: 0.0, A: 0.0},
			want:  ColorU8{R: 0, G: 0, B: 0, A: 0},
		},
		{
			name:  "clamping above 1",
			input: ColorF32{R: 1.5, G: 1.0, B: 1.0, A: 1.0},
			want:  ColorU8{R: 255, G: 255, B: 255, A: 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := F32ToU8(tt.input)
			if got != tt.want {
				t.Errorf("F32ToU8(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRoundTripU8F32 tests round-trip conversion between ColorU8 and ColorF32.
func TestRoundTripU8F32(t *testing.T) {
	for v := 0; v <= 255; v++ {
		original := ColorU8{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2), A: uint8(v)}
		roundTrip := F32ToU8(U8ToF32(original))
		if roundTrip != original {
			t.Errorf("Round-trip U8→F32→U8 failed: %v → %v", original, roundTrip)
		}
	}
}

// TestF32ToU8Rounding tests correct rounding behavior.
func TestF32ToU8Rounding(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  uint8
	}{
		{"0.0", 0.0, 0},
		{"1.0", 1.0, 255},
		{"0.5 rounds to 128", 0.5, 128},               // 0.5 * 255 = 127.5 → 128
		{"127/255 rounds to 127", 127.0 / 255.0, 127}, // Exact value
		{"128/255 rounds to 128", 128.0 / 255.0, 128}, // Exact value
		{"just below 0.5", 127.0 / 255.0, 127},
		{"just above 0.5", 128.0 / 255.0, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := ColorF32{R: tt.input, G: 0, B: 0, A: 0}
			got := F32ToU8(color)
			if got.R != tt.want {
				t.Errorf("F32ToU8(R=%v).R = %v, want %v", tt.input, got.R, tt.want)
			}
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	pix := []byte{9, 10, 20, 30, 40, 11}

	c := FromBytes(pix[1:])
	want := ColorU8{R: 10, G: 20, B: 30, A: 40}
	if c != want {
		t.Fatalf("FromBytes = %v, want %v", c, want)
	}

	ColorU8{R: 1, G: 2, B: 3, A: 4}.PutBytes(pix[1:])
	if pix[0] != 9 || pix[5] != 11 {
		t.Errorf("PutBytes wrote outside its four bytes: %v", pix)
	}
	if got := FromBytes(pix[1:]); got != (ColorU8{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("FromBytes after PutBytes = %v", got)
	}
}

// floatNear checks if two float32 values are within epsilon of each other.
func floatNear(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) < float64(epsilon)
}

// colorF32Near checks if two ColorF32 values are within epsilon of each other.
func colorF32Near(a, b ColorF32, epsilon float32) bool {
	return floatNear(a.R, b.R, epsilon) &&
		floatNear(a.G, b.G, epsilon) &&
		floatNear(a.B, b.B, epsilon) &&
		floatNear(a.A, b.A, epsilon)
}
