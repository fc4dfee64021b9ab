package content

import "testing"

func TestSetOrderClampsNegative(t *testing.T) {
	var b Base
	b.SetOrder(-3)
	if b.Order != 0 {
		t.Fatalf("expected order 0, got %d", b.Order)
	}
	b.SetOrder(4)
	if b.OrderValue() != 4 {
		t.Fatalf("expected order 4, got %d", b.OrderValue())
	}
}

func TestCommitteeRequiredIncludesMembers(t *testing.T) {
	c := Committee{Name: "Audit", Members: []CommitteeMember{{Name: "Jane"}, {Name: ""}}}
	fields := c.Required()
	if len(fields) != 3 {
		t.Fatalf("expected 3 required fields, got %d", len(fields))
	}
	if fields[2].Name != "members[1].name" || fields[2].Value != "" {
		t.Fatalf("unexpected member field %#v", fields[2])
	}
}

func TestDemoContentIsOrdered(t *testing.T) {
	for i, value := range DemoCoreValues() {
		if value.Order != i || !value.IsActive {
			t.Fatalf("unexpected demo core value %#v", value)
		}
	}
	if quote := DemoStockQuote(); quote.RefreshSeconds < 15 {
		t.Fatalf("demo refresh interval below minimum: %d", quote.RefreshSeconds)
	}
}
