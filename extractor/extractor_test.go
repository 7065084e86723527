package extractor

import (
	"regexp"
	"testing"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/value"
)

func bodyEvent(body string) value.Value {
	return value.Map(map[string]value.Value{
		"payload": value.Map(map[string]value.Value{"body": value.String(body)}),
	})
}

func TestExtractSuccess(t *testing.T) {
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload", "body"}),
		Regex:      regexp.MustCompile(`([0-9]+)\sDegrees`),
		GroupIndex: 1,
	}
	v, ok := e.Extract(bodyEvent("It is 42 Degrees now"), nil, "")
	if !ok {
		t.Fatal("expected success")
	}
	if s, _ := v.AsString(); s != "42" {
		t.Fatalf("got %q", s)
	}
}

func TestExtractNoMatch(t *testing.T) {
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload", "body"}),
		Regex:      regexp.MustCompile(`([0-9]+)\sDegrees`),
		GroupIndex: 1,
	}
	if _, ok := e.Extract(bodyEvent("no match"), nil, ""); ok {
		t.Fatal("expected failure")
	}
}

func TestExtractGroupIndexOutOfRange(t *testing.T) {
	// Pattern has a single group; group_match_idx 2 references a
	// non-existent group and must fail at match time, not build time.
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload", "body"}),
		Regex:      regexp.MustCompile(`([0-9]+)\sDegrees`),
		GroupIndex: 2,
	}
	if _, ok := e.Extract(bodyEvent("It is 42 Degrees now"), nil, ""); ok {
		t.Fatal("expected failure for out-of-range group index")
	}
}

func TestExtractGroupZeroIsWholeMatch(t *testing.T) {
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload", "body"}),
		Regex:      regexp.MustCompile(`[0-9]+ Degrees`),
		GroupIndex: 0,
	}
	v, ok := e.Extract(bodyEvent("It is 42 Degrees now"), nil, "")
	if !ok {
		t.Fatal("expected success")
	}
	if s, _ := v.AsString(); s != "42 Degrees" {
		t.Fatalf("got %q", s)
	}
}

func TestExtractGroupDidNotParticipate(t *testing.T) {
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload", "body"}),
		Regex:      regexp.MustCompile(`(a)|(b)`),
		GroupIndex: 2,
	}
	// "a" matches the first alternative; the second group never participates.
	if _, ok := e.Extract(bodyEvent("a"), nil, ""); ok {
		t.Fatal("expected failure when the selected group did not participate")
	}
}

func TestExtractNonStringSource(t *testing.T) {
	e := Extractor{
		Source:     accessor.NewEventField([]string{"payload"}),
		Regex:      regexp.MustCompile(`.*`),
		GroupIndex: 0,
	}
	if _, ok := e.Extract(bodyEvent("x"), nil, ""); ok {
		t.Fatal("expected failure on map-shaped source")
	}
}
