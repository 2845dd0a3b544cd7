package chipy

import "testing"

func TestListGetBoundsChecked(t *testing.T) {
	l := NewList([]Value{Integer(1), Integer(2), Integer(3)})
	if _, err := l.Get(3); err == nil {
		t.Fatal("Get(size) should fail with index-out-of-range")
	}
	if _, err := l.Get(-1); err == nil {
		t.Fatal("Get(-1) should fail with index-out-of-range")
	}
	v, err := l.Get(1)
	if err != nil {
		t.Fatalf("Get(1) failed: %v", err)
	}
	if v != Integer(2) {
		t.Fatalf("Get(1) = %v, want 2", v)
	}
}

func TestListContains(t *testing.T) {
	l := NewList([]Value{String("a"), String("b")})
	if !l.Contains(String("a")) {
		t.Error("expected list to contain \"a\"")
	}
	if l.Contains(String("z")) {
		t.Error("expected list not to contain \"z\"")
	}
}

func TestListIteratorVisitsInsertionOrder(t *testing.T) {
	l := NewList([]Value{Integer(1), Integer(2), Integer(3)})
	it := l.Iterate()
	var got []int32
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, int32(v.(Integer)))
	}
	want := []int32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDictionaryGetMissingIsNone(t *testing.T) {
	d := NewDictionary()
	if d.Get("missing") != None {
		t.Error("Get on a missing key should return None")
	}
}

func TestDictionaryInsertOverwrites(t *testing.T) {
	d := NewDictionary()
	d.Insert("a", Integer(1))
	d.Insert("a", Integer(2))
	if d.Size() != 1 {
		t.Fatalf("size = %d, want 1 (overwrite must not grow the key list)", d.Size())
	}
	if d.Get("a") != Integer(2) {
		t.Fatalf("Get(a) = %v, want 2", d.Get("a"))
	}
}

func TestDictionaryBareIterationYieldsValues(t *testing.T) {
	// spec §9 open question: `for x in d` yields values, not keys.
	d := NewDictionary()
	d.Insert("a", Integer(1))
	d.Insert("b", Integer(2))
	it := d.Iterate()
	var got []int32
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, int32(v.(Integer)))
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
}

func TestDictItemsYieldsKeyValueTuples(t *testing.T) {
	d := NewDictionary()
	d.Insert("a", Integer(1))
	d.Insert("b", Integer(2))
	items := &DictItems{dict: d}
	iterVal, err := items.Call(nil)
	if err != nil {
		t.Fatalf("items() failed: %v", err)
	}
	it := iterVal.(Iterator)
	v, ok := it.Next()
	if !ok {
		t.Fatal("expected at least one item")
	}
	tup := v.(*Tuple)
	if tup.First() != String("a") || tup.Second() != Integer(1) {
		t.Fatalf("got (%v, %v), want (a, 1)", tup.First(), tup.Second())
	}
}

func TestTupleIsFixedArityTwo(t *testing.T) {
	tup := NewTuple(String("k"), Integer(1))
	if tup.First() != String("k") || tup.Second() != Integer(1) {
		t.Fatalf("unexpected tuple fields: %v, %v", tup.First(), tup.Second())
	}
}

func TestRangeRejectsNonPositiveStep(t *testing.T) {
	if _, err := NewRange(0, 10, 0); err == nil {
		t.Error("NewRange with step=0 should fail")
	}
	if _, err := NewRange(0, 10, -1); err == nil {
		t.Error("NewRange with a negative step should fail")
	}
}

func TestRangeZeroYieldsNothing(t *testing.T) {
	r, err := NewRange(0, 0, 1)
	if err != nil {
		t.Fatalf("NewRange(0,0,1) failed: %v", err)
	}
	if _, ok := r.Next(); ok {
		t.Fatal("range(0) should yield no values")
	}
}

func TestRangeSequence(t *testing.T) {
	r, err := NewRange(0, 5, 2)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	var got []int32
	for {
		v, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, int32(v.(Integer)))
	}
	want := []int32{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
