package core

import (
	"reflect"
	"testing"
)

func TestReferenceListAdd(t *testing.T) {
	l := NewReferenceList("Enel", "Eni")

	got := l.Add("TIM")
	if !reflect.DeepEqual(got, []string{"Enel", "Eni", "TIM"}) {
		t.Fatalf("after add: %v", got)
	}

	// Case-insensitive duplicate keeps the original casing.
	got = l.Add("enel")
	if !reflect.DeepEqual(got, []string{"Enel", "Eni", "TIM"}) {
		t.Fatalf("duplicate add changed the list: %v", got)
	}

	// Blanks are dropped.
	got = l.Add("   ")
	if len(got) != 3 {
		t.Fatalf("blank add changed the list: %v", got)
	}
}

func TestReferenceListRemove(t *testing.T) {
	l := NewReferenceList("Enel", "Eni", "TIM")

	got := l.Remove("ENI")
	if !reflect.DeepEqual(got, []string{"Enel", "TIM"}) {
		t.Fatalf("after remove: %v", got)
	}

	// Removing an absent value is a no-op.
	got = l.Remove("Eni")
	if !reflect.DeepEqual(got, []string{"Enel", "TIM"}) {
		t.Fatalf("second remove changed the list: %v", got)
	}
}

func TestReferenceListIdempotence(t *testing.T) {
	l := NewReferenceList()
	for i := 0; i < 3; i++ {
		l.Add("Vodafone")
	}
	if got := l.Values(); len(got) != 1 {
		t.Fatalf("repeated adds: %v", got)
	}
	for i := 0; i < 3; i++ {
		l.Remove("vodafone")
	}
	if got := l.Values(); len(got) != 0 {
		t.Fatalf("repeated removes: %v", got)
	}
}

func TestReferenceListValuesIsACopy(t *testing.T) {
	l := NewReferenceList("Enel")
	v := l.Values()
	v[0] = "mutated"
	if !l.Contains("Enel") {
		t.Fatal("mutating the returned slice leaked into the list")
	}
}

func TestNewReferenceListDedupes(t *testing.T) {
	l := NewReferenceList("Enel", "ENEL", "", "Eni")
	if got := l.Values(); !reflect.DeepEqual(got, []string{"Enel", "Eni"}) {
		t.Fatalf("seed dedupe: %v", got)
	}
}
