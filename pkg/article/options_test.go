package article

import (
	"reflect"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.DocumentTypes[0].Value != All || o.Subjects[0].Value != All {
		t.Error("selectors must start with the all entry")
	}
	if got := o.DocumentTypeLabel("ordonanta"); got != "Ordonanțe" {
		t.Errorf("DocumentTypeLabel(ordonanta) = %q", got)
	}
	if got := o.SubjectLabel("sanatate"); got != "Sănătate" {
		t.Errorf("SubjectLabel(sanatate) = %q", got)
	}
	if got := o.SubjectLabel("justitie"); got != "justitie" {
		t.Errorf("unknown value label = %q, want the value", got)
	}
}

func TestOptionsWithAll(t *testing.T) {
	o := Options{
		DocumentTypes: []Option{{"ordin", "Ordine"}},
		Subjects:      []Option{{All, "Tot"}, {"mediu", "Mediu"}},
	}.WithAll()

	if len(o.DocumentTypes) != 2 || o.DocumentTypes[0].Value != All {
		t.Errorf("DocumentTypes = %+v, want all prepended", o.DocumentTypes)
	}
	if len(o.Subjects) != 2 || o.Subjects[0].Label != "Tot" {
		t.Errorf("Subjects = %+v, want unchanged", o.Subjects)
	}
}

func TestBadges(t *testing.T) {
	o := DefaultOptions()

	if got := o.Badges(NoCriteria); len(got) != 0 {
		t.Errorf("Badges(NoCriteria) = %+v, want none", got)
	}

	got := o.Badges(Criteria{Query: "buget", DocumentType: "hotarare", Subject: "educatie"})
	want := []Badge{
		{Kind: "query", Value: "buget", Label: `Căutare: "buget"`},
		{Kind: "document_type", Value: "hotarare", Label: "Tip: Hotărâri"},
		{Kind: "subject", Value: "educatie", Label: "Subiect: Educație"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Badges = %+v, want %+v", got, want)
	}
}
