package host

import "testing"

func TestRecorderForwardsAndRecords(t *testing.T) {
	m := NewMemory()
	rec := NewRecorder(m)
	root := m.NewContainer("root")

	var seen int
	rec.OnOp = func(Op) { seen++ }

	div, err := rec.CreateNode("div")
	if err != nil {
		t.Fatal(err)
	}
	txt, _ := rec.CreateTextNode()
	_ = rec.SetProperty(txt, "nodeValue", "hi")
	_ = rec.AppendChild(div, txt)
	_ = rec.AppendChild(root, div)

	wantKinds := []OpKind{OpCreateNode, OpCreateText, OpSetProperty, OpAppendChild, OpAppendChild}
	ops := rec.Ops()
	if len(ops) != len(wantKinds) {
		t.Fatalf("len(ops) = %d, want %d", len(ops), len(wantKinds))
	}
	for i, k := range wantKinds {
		if ops[i].Kind != k {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i].Kind, k)
		}
	}
	if seen != len(wantKinds) {
		t.Errorf("OnOp called %d times, want %d", seen, len(wantKinds))
	}
	if rec.Mutations() != 3 {
		t.Errorf("Mutations() = %d, want 3", rec.Mutations())
	}
	if root.TextContent() != "hi" {
		t.Errorf("operations were not forwarded")
	}

	rec.Reset()
	if len(rec.Ops()) != 0 {
		t.Error("Reset should clear ops")
	}
}

func TestRecorderRecordsErrors(t *testing.T) {
	rec := NewRecorder(NewMemory())
	err := rec.SetProperty("bogus", "id", "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if rec.Ops()[0].Err == nil {
		t.Error("recorded op should carry the error")
	}
}

func TestOpKindString(t *testing.T) {
	if OpInsertBefore.String() != "InsertBefore" {
		t.Errorf("String() = %q", OpInsertBefore.String())
	}
	if OpKind(99).String() != "Unknown" {
		t.Errorf("String() = %q", OpKind(99).String())
	}
	if OpCreateNode.Mutates() || !OpRemoveChild.Mutates() {
		t.Error("Mutates() misclassifies")
	}
}
