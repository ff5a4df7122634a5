package dict

// DefaultCatalogID is the ID of the built-in Romanian legal-term catalog.
const DefaultCatalogID = "termeni-ro"

// romanianTerms is the built-in catalog, in catalog order.
var romanianTerms = []TermSpec{
	{"hotărâre de guvern", "Hotărârea de Guvern este un act normativ adoptat de Guvernul României pentru aplicarea legilor sau pentru reglementarea unor aspecte administrative specifice."},
	{"hotărâre", "Hotărârea de Guvern este un act normativ adoptat de Guvernul României pentru aplicarea legilor sau pentru reglementarea unor aspecte administrative specifice."},
	{"ordonanță de urgență", "Ordonanța de urgență este un act normativ adoptat de Guvern în situații excepționale, care intră în vigoare imediat și trebuie să fie aprobată ulterior de Parlament."},
	{"ordonanță", "Ordonanța este un act normativ adoptat de Guvern pentru reglementarea unor domenii care nu sunt rezervate legii, sau pentru detalierea unor prevederi legale."},
	{"ordin", "Ordinul este un act administrativ emis de un ministru sau de șeful unei instituții publice pentru aplicarea legilor în domeniul său de competență."},
	{"comunicat de presă", "Comunicatul de presă este o informare oficială destinată mijloacelor de informare în masă despre activitățile și deciziile instituțiilor publice."},
	{"informare", "Informarea reprezintă comunicarea oficială către public a unor informații de interes general despre activitatea instituțiilor publice."},
	{"act normativ", "Actul normativ este un document oficial care conține norme juridice și care reglementează comportamentul în societate."},
}

// Romanian returns a fresh copy of the built-in Romanian catalog.
func Romanian() *Catalog {
	return NewCatalog(&Manifest{
		ID:        DefaultCatalogID,
		Version:   "1.0",
		Locale:    "ro",
		Source:    "built-in",
		License:   "CC0",
		Normalize: "lowercase",
	}, romanianTerms, DefaultCacheTTL)
}
