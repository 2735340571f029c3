package workflow

import "testing"

func TestContextPutGet(t *testing.T) {
	c := NewContext()
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty Context returned ok=true")
	}
	c.Put("k", "v")
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("Get(%q) = %v, %v; want \"v\", true", "k", v, ok)
	}
	if !c.ContainsKey("k") {
		t.Fatal("ContainsKey(k) = false after Put")
	}
	c.Delete("k")
	if c.ContainsKey("k") {
		t.Fatal("ContainsKey(k) = true after Delete")
	}
}

func TestContextFromSeedIsIndependentOfMap(t *testing.T) {
	seed := map[string]any{"a": 1}
	c := NewContextFrom(seed)
	seed["a"] = 2
	v, _ := c.Get("a")
	if v != 1 {
		t.Fatalf("Context mutated via external seed map reference: got %v, want 1", v)
	}
}

func TestGetTypedMismatchTreatedAsAbsent(t *testing.T) {
	c := NewContext()
	c.Put("n", "not-an-int")
	if _, ok := GetTyped[int](c, "n"); ok {
		t.Fatal("GetTyped[int] on a string value returned ok=true")
	}
	c.Put("n2", 7)
	v, ok := GetTyped[int](c, "n2")
	if !ok || v != 7 {
		t.Fatalf("GetTyped[int](n2) = %v, %v; want 7, true", v, ok)
	}
}

func TestContextIterateSliceAndTypedSlice(t *testing.T) {
	c := NewContext()
	c.Put("items", []any{1, 2, 3})
	items, ok := c.Iterate("items")
	if !ok || len(items) != 3 {
		t.Fatalf("Iterate([]any) = %v, %v", items, ok)
	}

	c.Put("typed", []int{4, 5})
	typed, ok := c.Iterate("typed")
	if !ok || len(typed) != 2 || typed[0] != 4 {
		t.Fatalf("Iterate([]int) = %v, %v", typed, ok)
	}

	c.Put("scalar", 1)
	if _, ok := c.Iterate("scalar"); ok {
		t.Fatal("Iterate on a scalar returned ok=true")
	}
}

func TestContextCloneIsIndependent(t *testing.T) {
	c := NewContext()
	c.Put("k", "original")
	clone := c.Clone()
	clone.Put("k", "mutated")

	v, _ := c.Get("k")
	if v != "original" {
		t.Fatalf("parent Context mutated through clone: got %v, want \"original\"", v)
	}
	if clone.CorrelationID != c.CorrelationID {
		t.Fatal("Clone changed CorrelationID")
	}
}

func TestContextKeys(t *testing.T) {
	c := NewContext()
	c.Put("a", 1)
	c.Put("b", 2)
	keys := c.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want 2 entries", keys)
	}
}
