package resotype

import "testing"

func TestPrimitiveIdentity(t *testing.T) {
	r := NewRegistry(64)
	if r.Primitive(KindI32) != r.Primitive(KindI32) {
		t.Fatal("Primitive(KindI32) must return the same instance on repeated calls")
	}
}

func TestResourceIdentity(t *testing.T) {
	r := NewRegistry(64)
	u8 := r.Primitive(KindU8)
	v1 := r.VectorOf(u8)
	v2 := r.VectorOf(u8)
	if v1 != v2 {
		t.Fatal("VectorOf(u8) must cache and return the same instance")
	}
	if v1.String() != "Vector<u8>" {
		t.Fatalf("unexpected display name: %s", v1.String())
	}
}

func TestResolveNamePrimitivesAndResources(t *testing.T) {
	r := NewRegistry(64)
	if _, ok := r.ResolveName("i32"); !ok {
		t.Fatal("expected i32 to resolve")
	}
	if _, ok := r.ResolveName("NoSuchType"); ok {
		t.Fatal("expected unknown type name to fail resolution")
	}
	r.Resource("Widget", nil)
	if _, ok := r.ResolveName("Widget"); !ok {
		t.Fatal("expected previously registered resource to resolve")
	}
}

func TestClassifyConversionMatrix(t *testing.T) {
	r := NewRegistry(64)
	i8, i32, u32, f32, f64, boolT, charT := r.Primitive(KindI8), r.Primitive(KindI32),
		r.Primitive(KindU32), r.Primitive(KindF32), r.Primitive(KindF64),
		r.Primitive(KindBool), r.Primitive(KindChar)

	cases := []struct {
		src, dst *Type
		want     ConversionKind
	}{
		{i8, i32, ConvIntSExt},
		{i32, i8, ConvIntTrunc},
		{u32, i32, ConvIdentity},
		{i32, f64, ConvSIToFP},
		{u32, f64, ConvUIToFP},
		{f64, i32, ConvFPToSI},
		{f32, f64, ConvFPExt},
		{f64, f32, ConvFPTrunc},
		{charT, u32, ConvIdentity},
		{charT, i8, ConvIntTrunc},
		{boolT, i32, ConvForbidden},
		{i32, boolT, ConvForbidden},
	}
	for _, c := range cases {
		if got := ClassifyConversion(c.src, c.dst); got != c.want {
			t.Errorf("ClassifyConversion(%s, %s) = %d, want %d", c.src, c.dst, got, c.want)
		}
	}
}

func TestIntegerRange(t *testing.T) {
	r := NewRegistry(64)
	min, max := r.IntegerRange(r.Primitive(KindI8))
	if min != -128 || max != 127 {
		t.Fatalf("i8 range = [%d, %d], want [-128, 127]", min, max)
	}
	min, max = r.IntegerRange(r.Primitive(KindU8))
	if min != 0 || max != 255 {
		t.Fatalf("u8 range = [%d, %d], want [0, 255]", min, max)
	}
}
