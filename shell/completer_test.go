package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func suffixes(out [][]rune) []string {
	s := make([]string, len(out))
	for i, r := range out {
		s[i] = string(r)
	}
	return s
}

func TestCompleter_Do(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name    string
		line    string
		want    []string
		wantLen int
	}{
		{"empty line", "", nil, 0},
		{"command prefix", "tr", []string{"ain ", "anspose "}, 2},
		{"unique command", "cog", []string{"nitive "}, 3},
		{"no match", "zz", nil, 2},
		{"layer activation", "layer 3 4 si", []string{"gmoid "}, 2},
		{"layer activation all", "layer 3 4 ", []string{"relu ", "sigmoid ", "tanh ", "linear "}, 0},
		{"layer size is not completed", "layer 3", nil, 0},
		{"reason rule", "reason m", []string{"ax ", "in "}, 1},
		{"reason items not completed", "reason max 1", nil, 0},
		{"length counts runes", "layer 3 4 é", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []rune(tt.line)
			out, n := c.Do(line, len(line))
			if tt.want == nil {
				assert.Empty(t, out)
			} else {
				assert.Equal(t, tt.want, suffixes(out))
			}
			assert.Equal(t, tt.wantLen, n)
		})
	}
}
