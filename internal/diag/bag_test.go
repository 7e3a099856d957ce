package diag

import (
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

func TestBagLimitAndCount(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 1, End: 2}
	if !b.Add(New(SevWarning, TrnHoistDeclined, sp, "a")) {
		t.Fatal("first add rejected")
	}
	b.Add(NewError(SynUnexpectedToken, sp, "b"))
	if b.Add(NewError(SynUnexpectedToken, sp, "c")) {
		t.Fatal("limit not enforced")
	}
	if b.Dropped() != 1 {
		t.Errorf("Dropped = %d", b.Dropped())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Errorf("HasErrors/HasWarnings mismatch")
	}
	if got := b.Count(SevError); got != 1 {
		t.Errorf("Count(SevError) = %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevInfo, TrnNestedProperty, source.Span{Start: 10, End: 12}, "x"))
	b.Add(New(SevError, TrnInternal, source.Span{Start: 10, End: 12}, "y"))
	b.Add(New(SevWarning, TrnHoistDeclined, source.Span{Start: 3, End: 4}, "z"))
	b.Add(New(SevWarning, TrnHoistDeclined, source.Span{Start: 3, End: 4}, "z"))

	b.Dedup()
	b.Sort()
	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Message != "z" || items[1].Message != "y" || items[2].Message != "x" {
		t.Errorf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}

	b.Filter(SevWarning)
	if b.Len() != 2 {
		t.Errorf("Filter kept %d", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexBadNumber:     "LEX1004",
		SynUnexpectedEOF: "SYN2010",
		TrnHoistDeclined: "TRN3002",
		IOWriteFileError: "IO4002",
		CfgUnknownKey:    "CFG5002",
		UnknownCode:      "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestBagReporterKeepsNotes(t *testing.T) {
	bag := NewBag(0)
	r := &BagReporter{Bag: bag}
	sp := source.Span{Start: 1, End: 5}
	ReportWarning(r, TrnHoistDeclined, sp, "declined").WithNote(sp, "note").Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Errorf("note lost")
	}
}

func TestSeverityString(t *testing.T) {
	tests := map[Severity]string{
		SevInfo:     "INFO",
		SevWarning:  "WARNING",
		SevError:    "ERROR",
		Severity(9): "UNKNOWN",
	}
	for sev, want := range tests {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", uint8(sev), got, want)
		}
	}
}
