package cascade_test

import (
	"testing"

	"github.com/jacentio/stockroom/cascade"
)

func TestNewRegistry(t *testing.T) {
	r := cascade.NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil Registry")
	}
	if len(r.Schemas()) != 0 {
		t.Errorf("expected empty registry, got %d schemas", len(r.Schemas()))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := cascade.NewRegistry()

	r.Register(boxSchema())

	schemas := r.Schemas()
	if len(schemas) != 1 {
		t.Fatalf("expected 1 schema, got %d", len(schemas))
	}
	if schemas[0].EntityType != "box" {
		t.Errorf("expected EntityType 'box', got %q", schemas[0].EntityType)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := cascade.NewRegistry()

	r.Register(boxSchema())
	r.Register(cascade.Schema{
		EntityType: "box",
		Fields:     []cascade.Field{{Name: "id"}},
	})

	schemas := r.Schemas()
	if len(schemas) != 1 {
		t.Fatalf("expected re-registration to replace, got %d schemas", len(schemas))
	}
	if len(schemas[0].Fields) != 1 {
		t.Errorf("expected replaced schema with 1 field, got %d", len(schemas[0].Fields))
	}
}

func TestRegistry_SchemaOf(t *testing.T) {
	r := testRegistry()

	s, ok := r.SchemaOf("part")
	if !ok {
		t.Fatal("expected part schema")
	}
	if len(s.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(s.Fields))
	}

	if _, ok := r.SchemaOf("lid"); ok {
		t.Error("expected no schema for lid")
	}
}

func TestRegistry_SchemasOrder(t *testing.T) {
	r := cascade.NewRegistry()
	r.Register(partSchema())
	r.Register(boxSchema())

	schemas := r.Schemas()
	if schemas[0].EntityType != "part" || schemas[1].EntityType != "box" {
		t.Error("expected registration order")
	}

	// Returned slice is a copy
	schemas[0].EntityType = "changed"
	if s, _ := r.SchemaOf("part"); s.EntityType != "part" {
		t.Error("expected registry to be unaffected by caller changes")
	}
}

func TestRegistry_HasReferences(t *testing.T) {
	r := testRegistry()
	r.Register(cascade.Schema{
		EntityType: "note",
		Fields: []cascade.Field{
			{Name: "id"},
			// A reference without the cascade marker is not cascaded
			{Name: "author", Kind: cascade.KindRef, Markers: cascade.MarkRef, Target: "user"},
		},
	})

	if !r.HasReferences("box") {
		t.Error("expected box to have references")
	}
	if r.HasReferences("note") {
		t.Error("expected note to have no cascaded references")
	}
	if r.HasReferences("unknown") {
		t.Error("expected unregistered type to have no references")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := cascade.NewRegistry()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			r.Register(boxSchema())
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		r.SchemaOf("box")
		r.HasReferences("box")
	}
	<-done
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     cascade.Kind
		expected string
	}{
		{cascade.KindPlain, "plain"},
		{cascade.KindRef, "ref"},
		{cascade.KindRefCollection, "ref-collection"},
		{cascade.Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestMarker_Has(t *testing.T) {
	both := cascade.MarkRef | cascade.MarkCascadeSave

	if !both.Has(cascade.MarkRef) || !both.Has(cascade.MarkCascadeSave) || !both.Has(both) {
		t.Error("expected both markers to be set")
	}
	if cascade.MarkRef.Has(both) {
		t.Error("expected MarkRef alone not to satisfy both")
	}
}
