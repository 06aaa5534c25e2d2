package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

func TestGlobalVariableDefinitionForbidden(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	err := tbl.DefineVariable(&VariableSymbol{Name: "x", Type: reg.Primitive(resotype.KindI32)})
	require.Error(t, err)
	assert.Equal(t, ErrGlobalVariable, err.(*Diagnostic).Code)
}

func TestRedefinitionSameScopeRejected(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	tbl.PushFunctionScope(reg.Primitive(resotype.KindUnit))

	i32 := reg.Primitive(resotype.KindI32)
	require.NoError(t, tbl.DefineVariable(&VariableSymbol{Name: "x", Type: i32}))
	err := tbl.DefineVariable(&VariableSymbol{Name: "x", Type: i32})
	require.Error(t, err)
	assert.Equal(t, ErrRedefinition, err.(*Diagnostic).Code)
}

func TestShadowingInnerScopeAllowed(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	i32 := reg.Primitive(resotype.KindI32)
	tbl.PushFunctionScope(reg.Primitive(resotype.KindUnit))
	require.NoError(t, tbl.DefineVariable(&VariableSymbol{Name: "x", Type: i32, Initialized: true}))

	tbl.PushBlockScope()
	require.NoError(t, tbl.DefineVariable(&VariableSymbol{Name: "x", Type: i32, Initialized: true}))
}

func TestFindReadableVariableDistinguishesNotDefinedFromNotInitialized(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	i32 := reg.Primitive(resotype.KindI32)
	tbl.PushFunctionScope(reg.Primitive(resotype.KindUnit))

	_, err := tbl.FindReadableVariable("missing")
	require.Error(t, err)
	assert.Equal(t, ErrNotDefined, err.(*Diagnostic).Code)

	require.NoError(t, tbl.DefineVariable(&VariableSymbol{Name: "y", Type: i32}))
	_, err = tbl.FindReadableVariable("y")
	require.Error(t, err)
	assert.Equal(t, ErrNotInitialized, err.(*Diagnostic).Code)

	_, err = tbl.InitializeVariable("y")
	require.NoError(t, err)
	v, err := tbl.FindReadableVariable("y")
	require.NoError(t, err)
	assert.True(t, v.Initialized)
}

func TestInitializeVariableRejectsDoubleConstInit(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	i32 := reg.Primitive(resotype.KindI32)
	tbl.PushFunctionScope(reg.Primitive(resotype.KindUnit))
	require.NoError(t, tbl.DefineVariable(&VariableSymbol{Name: "c", Type: i32, IsConstant: true}))

	_, err := tbl.InitializeVariable("c")
	require.NoError(t, err)
	_, err = tbl.InitializeVariable("c")
	require.Error(t, err)
	assert.Equal(t, ErrConstAssign, err.(*Diagnostic).Code)
}

func TestExitingGlobalScopeIsAnError(t *testing.T) {
	tbl := NewTable("a.reso")
	err := tbl.PopScope()
	require.Error(t, err)
	assert.Equal(t, ErrScopeUnderflow, err.(*Diagnostic).Code)
}

func TestFunctionVisibilityAcrossFiles(t *testing.T) {
	tbl := NewTable("a.reso")
	reg := resotype.NewRegistry(64)
	unit := reg.Primitive(resotype.KindUnit)
	require.NoError(t, tbl.DefineGlobal("helper", KindFunction, &FunctionSymbol{
		Name: "helper", ReturnType: unit, Visibility: FilePrivate, File: "a.reso",
	}))

	_, err := tbl.LookupFunction("helper", "a.reso")
	require.NoError(t, err)

	_, err = tbl.LookupFunction("helper", "b.reso")
	require.Error(t, err)
	assert.Equal(t, ErrVisibility, err.(*Diagnostic).Code)
}

func TestMethodLookupByPathAndName(t *testing.T) {
	reg := resotype.NewRegistry(64)
	usize := reg.Primitive(resotype.KindUsize)
	vecType := reg.VectorOf(reg.Primitive(resotype.KindU8))
	res := NewResourceSymbol("Vector", vecType, "builtin", GlobalVisibility)

	path := []PathSegment{{IndexerName: "index", IndexerType: usize}}
	res.AddMethod(&MethodSymbol{Name: "get", Path: path, ReturnType: reg.Primitive(resotype.KindU8)})

	m, ok := res.LookupMethod(path, "get")
	require.True(t, ok)
	assert.Equal(t, "get", m.Name)

	_, ok = res.LookupMethod(nil, "get")
	assert.False(t, ok)
}
