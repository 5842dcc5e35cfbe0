package xmlfmt

import (
	"testing"

	"github.com/hezzel/wanda-sub001/internal/term"
)

const typedDoc = `<?xml version="1.0"?>
<problem>
  <variableTypeInfo>
    <varDeclaration><var>y</var><type><basic>nat</basic></type></varDeclaration>
  </variableTypeInfo>
  <functionSymbolTypeInfo>
    <funcDeclaration><name>0</name><typeDeclaration><type><basic>nat</basic></type></typeDeclaration></funcDeclaration>
    <funcDeclaration><name>s</name><typeDeclaration><type><arrow><type><basic>nat</basic></type><type><basic>nat</basic></type></arrow></type></typeDeclaration></funcDeclaration>
    <funcDeclaration><name>plus</name><typeDeclaration><type><arrow><type><basic>nat</basic></type><type><arrow><type><basic>nat</basic></type><type><basic>nat</basic></type></arrow></type></arrow></type></typeDeclaration></funcDeclaration>
  </functionSymbolTypeInfo>
  <rules>
    <rule>
      <lhs><funapp><name>plus</name><arg><funapp><name>0</name></funapp></arg><arg><var>y</var></arg></funapp></lhs>
      <rhs><var>y</var></rhs>
    </rule>
  </rules>
</problem>`

func TestDetectReportsTypedSchema(t *testing.T) {
	if !Detect(typedDoc) {
		t.Fatal("expected Detect to find functionSymbolTypeInfo")
	}
}

func TestParseTypedDocument(t *testing.T) {
	res, err := Parse(typedDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.AFSM {
		t.Fatal("expected AFSM true for a typed document")
	}
	if typ, ok := res.Alphabet.Lookup("plus"); !ok || term.Arity(typ) != 2 {
		t.Fatalf("plus not declared with arity 2: %v %v", typ, ok)
	}
	if len(res.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(res.Rules))
	}
}

const untypedDoc = `<problem>
  <rules>
    <rule>
      <lhs><funapp><name>f</name><arg><var>x</var></arg></funapp></lhs>
      <rhs><var>x</var></rhs>
    </rule>
  </rules>
</problem>`

func TestParseUntypedDocumentInfersArity(t *testing.T) {
	res, err := Parse(untypedDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.AFSM {
		t.Fatal("expected AFSM false for an untyped document")
	}
	if typ, ok := res.Alphabet.Lookup("f"); !ok || term.Arity(typ) != 1 {
		t.Fatalf("f not declared with arity 1: %v %v", typ, ok)
	}
}
