package framework

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapturingLogger(t *testing.T) {
	var l CapturingLogger
	l.Printf("value is %d", 3)
	when := time.Date(2024, 3, 1, 12, 30, 15, 250*int(time.Millisecond), time.UTC)
	l.Append(when, "100% raw")

	output := l.Output()
	assert.Len(t, output, 2)
	assert.Equal(t, "value is 3", output[0].Message)

	var buf bytes.Buffer
	output[1:].Dump(&buf, "  > ")
	assert.Equal(t, "  > [2024-03-01 12:30:15.250] 100% raw\n", buf.String())
}
