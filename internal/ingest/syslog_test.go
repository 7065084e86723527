package ingest

import "testing"

func TestParseSyslogDatagramExtractsPriority(t *testing.T) {
	ev := parseSyslogDatagram("<134>auth: login failure for root")
	m, ok := ev.Payload.AsMap()
	if !ok {
		t.Fatal("expected map payload")
	}
	msg, _ := m["message"].AsString()
	if msg != "auth: login failure for root" {
		t.Fatalf("message = %q", msg)
	}
	facility, _ := m["facility"].AsNumber()
	severity, _ := m["severity"].AsNumber()
	if facility != 16 || severity != 6 {
		t.Fatalf("facility=%v severity=%v", facility, severity)
	}
}

func TestParseSyslogDatagramWithoutPriorityKeepsWholeLine(t *testing.T) {
	ev := parseSyslogDatagram("plain message, no tag")
	m, _ := ev.Payload.AsMap()
	if _, ok := m["priority"]; ok {
		t.Fatal("priority must be absent when there is no <NN> tag")
	}
	msg, _ := m["message"].AsString()
	if msg != "plain message, no tag" {
		t.Fatalf("message = %q", msg)
	}
}
