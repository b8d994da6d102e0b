package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"Простой заголовок", "Hello World", "hello-world"},
		{"Спецсимволы схлопываются", "Go: Tips & Tricks!", "go-tips-tricks"},
		{"Регистр понижается", "My FIRST Post", "my-first-post"},
		{"Дефисы по краям обрезаются", "  Hello  ", "hello"},
		{"Цифры сохраняются", "Top 10 Libraries 2025", "top-10-libraries-2025"},
		{"Несколько разделителей подряд", "a --- b", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}
