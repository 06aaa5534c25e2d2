package parsetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilNodeAccessorsDegradeGracefully(t *testing.T) {
	var nd Node
	assert.True(t, nd.IsNil())
	assert.Equal(t, "", nd.Kind())
	assert.Equal(t, "", nd.Text())
	assert.Equal(t, 0, nd.ChildCount())
	assert.True(t, nd.Child(0).IsNil())
	assert.True(t, nd.Field("anything").IsNil())
	assert.Nil(t, nd.Children("x"))
	assert.Nil(t, nd.All())
	line, col := nd.Pos()
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
}

func TestWrapOfNilSitterNodeIsNil(t *testing.T) {
	n := Wrap(nil, []byte("source"))
	assert.True(t, n.IsNil())
}
