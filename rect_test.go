package main

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 5, Height: 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{14.9, 24.9, true},
		{15, 22, false},
		{12, 25, false},
		{9.9, 22, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Fatalf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
