package ir

import "testing"

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("%s round-tripped to %s", typ, back)
		}
	}
	var typ Type
	if err := typ.UnmarshalText([]byte("Blob")); err == nil {
		t.Error("unknown type name unmarshaled")
	}
}
