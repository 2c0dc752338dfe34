package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"_private", true},
		{"snake_case_2", true},
		{"café", true},
		{"", false},
		{"2fast", false},
		{"has space", false},
		{"dash-ed", false},
		{"lambda", false},
		{"None", false},
		{"ｉｆ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsName(tt.name))
		})
	}
}

func TestCheckName(t *testing.T) {
	assert.NoError(t, CheckName("value"))
	assert.EqualError(t, CheckName("class"), `invalid identifier "class": reserved word`)
	assert.True(t, IsKeyword("yield"))
	assert.False(t, IsKeyword("print"))
}
