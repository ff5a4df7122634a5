package highlight

// Explainer looks up the explanation of a term. A missing term is not an
// error; ok is false.
type Explainer interface {
	Explain(term string) (explanation string, ok bool)
}

// Annotated is a segment with the explanation a tooltip would show for it.
type Annotated struct {
	Segment
	Explanation string `json:"explanation,omitempty"`
}

// Annotate attaches explanations to tagged segments. Plain segments and terms
// the explainer does not know get an empty explanation.
func Annotate(segs []Segment, ex Explainer) []Annotated {
	out := make([]Annotated, len(segs))
	for i, s := range segs {
		out[i].Segment = s
		if !s.IsTagged() || ex == nil {
			continue
		}
		if text, ok := ex.Explain(s.Term); ok {
			out[i].Explanation = text
		}
	}
	return out
}
