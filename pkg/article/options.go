package article

// Option is one entry of a filter selector.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options are the choices offered by the document-type and subject selectors.
// Each list starts with the All entry.
type Options struct {
	DocumentTypes []Option `json:"document_types" yaml:"document_types"`
	Subjects      []Option `json:"subjects" yaml:"subjects"`
}

// DefaultOptions returns the selectors of the Romanian viewer.
func DefaultOptions() Options {
	return Options{
		DocumentTypes: []Option{
			{All, "Toate tipurile"},
			{"hotarare", "Hotărâri"},
			{"ordonanta", "Ordonanțe"},
			{"ordin", "Ordine"},
			{"informare", "Informări"},
			{"comunicat", "Comunicate"},
		},
		Subjects: []Option{
			{All, "Toate subiectele"},
			{"sanatate", "Sănătate"},
			{"educatie", "Educație"},
			{"transport", "Transport"},
			{"infrastructura", "Infrastructură"},
			{"economie", "Economie"},
			{"mediu", "Mediu"},
			{"securitate", "Securitate"},
			{"administratie", "Administrație"},
		},
	}
}

// WithAll returns o with an All entry prepended to any list missing one, so
// configured selectors always offer "no constraint".
func (o Options) WithAll() Options {
	def := DefaultOptions()
	o.DocumentTypes = ensureAll(o.DocumentTypes, def.DocumentTypes[0])
	o.Subjects = ensureAll(o.Subjects, def.Subjects[0])
	return o
}

func ensureAll(opts []Option, all Option) []Option {
	for _, opt := range opts {
		if opt.Value == All {
			return opts
		}
	}
	return append([]Option{all}, opts...)
}

// DocumentTypeLabel returns the label for a document-type value, or the value
// itself when it is not one of the options.
func (o Options) DocumentTypeLabel(value string) string {
	return label(o.DocumentTypes, value)
}

// SubjectLabel returns the label for a subject value, or the value itself.
func (o Options) SubjectLabel(value string) string {
	return label(o.Subjects, value)
}

func label(opts []Option, value string) string {
	for _, opt := range opts {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// Badge describes one active filter, as shown above the result list.
type Badge struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Badges lists the active criteria of c with their display labels.
func (o Options) Badges(c Criteria) []Badge {
	var out []Badge
	if c.Query != "" {
		out = append(out, Badge{Kind: "query", Value: c.Query, Label: `Căutare: "` + c.Query + `"`})
	}
	if c.DocumentType != All {
		out = append(out, Badge{Kind: "document_type", Value: c.DocumentType, Label: "Tip: " + o.DocumentTypeLabel(c.DocumentType)})
	}
	if c.Subject != All {
		out = append(out, Badge{Kind: "subject", Value: c.Subject, Label: "Subiect: " + o.SubjectLabel(c.Subject)})
	}
	return out
}
