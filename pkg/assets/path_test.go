package assets

import "testing"

func TestNormalizeConvertsSlashesAndValidatesRoot(t *testing.T) {
	got, ok := Normalize("Sceneryobjects/A/a.sco")
	if !ok {
		t.Fatal("expected a known-root reference to normalize")
	}
	if got != `Sceneryobjects\A\a.sco` {
		t.Errorf("got %q, want backslash-separated path", got)
	}
}

func TestNormalizeRejectsUnknownRoot(t *testing.T) {
	if _, ok := Normalize(`SomeRandomFolder\file.txt`); ok {
		t.Fatal("expected an unrecognized top-level folder to be rejected")
	}
}

func TestNormalizeStripsQuotesAndDotSlashPrefix(t *testing.T) {
	got, ok := Normalize(`"./Sceneryobjects/A/a.sco",`)
	if !ok {
		t.Fatal("expected normalization to succeed after trimming punctuation")
	}
	if got != `Sceneryobjects\A\a.sco` {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeRejectsLeadingSeparator(t *testing.T) {
	if _, ok := Normalize(`\Sceneryobjects\A\a.sco`); ok {
		t.Fatal("expected a leading separator to be rejected")
	}
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	if _, ok := Normalize("   "); ok {
		t.Fatal("expected blank input to be rejected")
	}
}

func TestToArchiveNameConvertsSeparators(t *testing.T) {
	if got := ToArchiveName(`Sceneryobjects\A\a.sco`); got != "Sceneryobjects/A/a.sco" {
		t.Errorf("got %q", got)
	}
}

func TestJoinPathTrimsAndJoins(t *testing.T) {
	if got := JoinPath(`Sceneryobjects\`, `A`, `a.sco`); got != `Sceneryobjects\A\a.sco` {
		t.Errorf("got %q", got)
	}
}
