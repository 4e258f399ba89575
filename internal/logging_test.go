package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer func() { Logf = orig }()

	var lines []string
	SetLogger(func(format string, v ...any) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	Logf("tick %d", 3)
	assert.Equal(t, []string{"tick 3"}, lines)

	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("muted %s", "line") })
	assert.Len(t, lines, 1)
}
