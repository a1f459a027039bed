package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gibfahn/dot/pkg/types"
)

func TestRenderLinkResult_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.RenderLinkResult(&types.LinkResult{
		Linked:        []string{".bashrc", ".vimrc"},
		AlreadyLinked: []string{".zshrc"},
		Displaced:     []string{".bashrc"},
	})

	out := buf.String()
	assert.Contains(t, out, "2 linked")
	assert.Contains(t, out, "1 already linked")
	assert.Contains(t, out, "1 existing paths moved to backup:")
	assert.Contains(t, out, ".bashrc")
	// A plain writer must never receive escape codes.
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderLinkResult_NoOp(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.RenderLinkResult(&types.LinkResult{AlreadyLinked: []string{"a", "b"}})
	assert.Equal(t, "Everything already linked (2 entries).\n", buf.String())
}

func TestRenderEnv_Sorted(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.RenderEnv(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, "A=1\nB=2\n", buf.String())
}
