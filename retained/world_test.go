package retained

import "testing"

func TestSpawnDespawnRecyclesSlots(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(Nil)
	Insert(w, a, Checked{})
	w.Despawn(a)

	if w.Alive(a) {
		t.Fatal("despawned entity still alive")
	}
	b := w.Spawn(Nil)
	if b.index != a.index {
		t.Fatalf("slot not recycled: a=%v b=%v", a, b)
	}
	if b == a {
		t.Fatal("recycled handle equals stale handle")
	}
	if Has[Checked](w, b) {
		t.Error("recycled entity inherited a component")
	}
	if Has[Checked](w, a) {
		t.Error("stale handle still reports a component")
	}
}

func TestNilEntityIsNeverAlive(t *testing.T) {
	w := NewWorld()
	w.Spawn(Nil)
	if w.Alive(Nil) {
		t.Error("Nil reported alive")
	}
	Insert(w, Nil, Checked{})
	if Has[Checked](w, Nil) {
		t.Error("component stored on Nil")
	}
}

func TestHierarchy(t *testing.T) {
	w := NewWorld()
	root := w.Spawn(Nil)
	a := w.Spawn(root)
	b := w.Spawn(root)
	a1 := w.Spawn(a)

	if got := w.Children(root); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Children(root) = %v, want [%v %v]", got, a, b)
	}
	if got := w.Parent(a1); got != a {
		t.Errorf("Parent(a1) = %v, want %v", got, a)
	}
	want := []Entity{a, a1, b}
	got := w.Descendants(root)
	if len(got) != len(want) {
		t.Fatalf("Descendants = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Descendants[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	w.Despawn(a)
	if w.Alive(a1) {
		t.Error("child survived parent despawn")
	}
	if got := w.Children(root); len(got) != 1 || got[0] != b {
		t.Errorf("Children(root) after despawn = %v, want [%v]", got, b)
	}
}

func TestComponentStorage(t *testing.T) {
	type label struct{ text string }

	w := NewWorld()
	e := w.Spawn(Nil)
	f := w.Spawn(Nil)

	Insert(w, e, label{"one"})
	Insert(w, e, label{"two"})
	if got, ok := Get[label](w, e); !ok || got.text != "two" {
		t.Errorf("Get = %v, %v; want {two}, true", got, ok)
	}
	if _, ok := Get[label](w, f); ok {
		t.Error("Get on entity without component returned ok")
	}

	Insert(w, f, label{"three"})
	if got := Query[label](w); len(got) != 2 {
		t.Errorf("Query returned %d entities, want 2", len(got))
	}

	Remove[label](w, e)
	if Has[label](w, e) {
		t.Error("component still present after Remove")
	}
}

func TestPointerComponentsShareState(t *testing.T) {
	type counter struct{ n int }

	w := NewWorld()
	e := w.Spawn(Nil)
	Insert(w, e, &counter{})

	c, _ := Get[*counter](w, e)
	c.n++
	again, _ := Get[*counter](w, e)
	if again.n != 1 {
		t.Errorf("n = %d, want 1", again.n)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 15, 15, true},
		{"top-left edge", 10, 10, true},
		{"right edge excluded", 30, 15, false},
		{"bottom edge excluded", 15, 20, false},
		{"left of", 9.9, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Nil)
	if got := w.Name(e); got != e.String() {
		t.Errorf("Name = %q, want %q", got, e.String())
	}
	w.SetName(e, "ok")
	if got := w.Name(e); got != "ok" {
		t.Errorf("Name = %q, want ok", got)
	}
}
