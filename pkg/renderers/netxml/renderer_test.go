package netxml

import (
	"strings"
	"testing"

	"github.com/goliatone/go-confmig/pkg/document"
)

func TestSerialize_WrapsMappingInConfigRoot(t *testing.T) {
	doc, _ := document.DecodeJSONString(`{"system": {"hostname": "sw1"}}`)

	out, err := New().Serialize(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "<config>") || !strings.Contains(text, "</config>") {
		t.Fatalf("expected config root, got:\n%s", text)
	}
	if !strings.Contains(text, "<hostname>sw1</hostname>") {
		t.Fatalf("expected hostname element, got:\n%s", text)
	}
}

func TestSerialize_StripsWrapperForNonMappingTopLevel(t *testing.T) {
	doc, _ := document.DecodeJSONString(`[{"vlan": "10"}, {"vlan": "20"}]`)

	out, err := New().Serialize(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	text := string(out)
	if strings.Contains(text, "xml_container") {
		t.Fatalf("wrapper tags should be stripped, got:\n%s", text)
	}
	if !strings.Contains(text, "<vlan>10</vlan>") || !strings.Contains(text, "<vlan>20</vlan>") {
		t.Fatalf("expected vlan elements, got:\n%s", text)
	}
}

func TestSerialize_RendersNestedLists(t *testing.T) {
	doc, _ := document.DecodeJSONString(`{"vlans": [{"id": "10"}, {"id": "20"}]}`)

	out, err := New().Serialize(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	text := string(out)
	if strings.Count(text, "<vlans>") != 2 {
		t.Fatalf("expected one vlans element per list item, got:\n%s", text)
	}
}

func TestContentTypeAndName(t *testing.T) {
	s := New()
	if s.Name() != "xml" {
		t.Fatalf("unexpected name: %q", s.Name())
	}
	if s.ContentType() != "application/xml" {
		t.Fatalf("unexpected content type: %q", s.ContentType())
	}
}
