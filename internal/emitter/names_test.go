package emitter

import "testing"

func freshContext() EmitterContext {
	return NewModuleContext(&Options{RootNamespace: "Demo"}, false, nil)
}

func TestAllocateLocalNameNoCollision(t *testing.T) {
	ctx := freshContext()
	name, ctx := ctx.AllocateLocalName("value")
	if name != "value" {
		t.Errorf("name = %q, want %q", name, "value")
	}
	if ctx.ResolveIdentifier("value") != "value" {
		t.Errorf("ResolveIdentifier(value) = %q, want %q", ctx.ResolveIdentifier("value"), "value")
	}
}

func TestAllocateLocalNameCollision(t *testing.T) {
	ctx := freshContext()
	first, ctx := ctx.AllocateLocalName("value")
	second, ctx := ctx.AllocateLocalName("value")
	if first == second {
		t.Fatalf("expected distinct emitted names for two allocations of the same IR name, got %q twice", first)
	}
	if second != "value_1" {
		t.Errorf("second allocation = %q, want %q", second, "value_1")
	}
	_ = ctx
}

func TestAllocateLocalNameEmptyIRName(t *testing.T) {
	ctx := freshContext()
	name, _ := ctx.AllocateLocalName("")
	if name != "_" {
		t.Errorf("name = %q, want %q", name, "_")
	}
}

func TestResolveIdentifierFallsBackToIRName(t *testing.T) {
	ctx := freshContext()
	if got := ctx.ResolveIdentifier("neverAllocated"); got != "neverAllocated" {
		t.Errorf("ResolveIdentifier(neverAllocated) = %q, want the name itself", got)
	}
}

func TestSyntheticTempsAreMonotonicAndDistinctByPrefix(t *testing.T) {
	ctx := freshContext()
	arr0, ctx := ctx.NextArrayTemp()
	arr1, ctx := ctx.NextArrayTemp()
	obj0, _ := ctx.NextObjectTemp()

	if arr0 == arr1 {
		t.Fatalf("expected distinct array temps, got %q twice", arr0)
	}
	if arr0 != "__arr0" || arr1 != "__arr1" {
		t.Errorf("array temps = %q, %q, want __arr0, __arr1", arr0, arr1)
	}
	if obj0 != "__obj2" {
		t.Errorf("object temp = %q, want __obj2 (shared monotonic counter)", obj0)
	}
}

func TestParamTempName(t *testing.T) {
	if got := ParamTempName(2); got != "__param2" {
		t.Errorf("ParamTempName(2) = %q, want %q", got, "__param2")
	}
}
