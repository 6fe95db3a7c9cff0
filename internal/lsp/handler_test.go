package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aris/internal/expr"
	"aris/internal/proof"
)

func TestAllRefsWalksNestedSubproofsDepthFirst(t *testing.T) {
	p := proof.New()
	root := p.Root()
	sub, err := p.AddSubproof(root)
	require.NoError(t, err)
	_, err = p.AddPremise(sub, expr.Var{Name: "p"})
	require.NoError(t, err)

	refs := allRefs(p, root)
	assert.Len(t, refs, 1)
}

func TestUriToPathStripsFileScheme(t *testing.T) {
	path, err := uriToPath("file:///tmp/example.xml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/example.xml", path)
}

func TestNewProofHandlerStartsEmpty(t *testing.T) {
	h := NewProofHandler()
	assert.Empty(t, h.content)
	assert.Empty(t, h.pools)
}
