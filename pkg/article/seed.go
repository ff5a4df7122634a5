package article

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by LoadSeed.
type seedFile struct {
	Articles []*Article `yaml:"articles"`
}

// LoadSeed reads articles from a YAML file:
//
//	articles:
//	  - id: sed_04_Iun
//	    title: ...
func LoadSeed(path string) ([]*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for i, a := range f.Articles {
		if a == nil {
			return nil, fmt.Errorf("seed %s: article %d is empty", path, i)
		}
		if a.ID == "" {
			a.ID = NewID()
		}
	}
	return f.Articles, nil
}

// MockArticles returns the demonstration articles the viewer starts with.
func MockArticles() []*Article {
	return []*Article{
		{
			ID:                "sed_04_Iun",
			Date:              "4 iunie 2025",
			Title:             "Informație de presă privind actele normative adoptate",
			OriginalContent:   "Guvernul României a adoptat în ședința din 4 iunie 2025 mai multe acte normative importante pentru dezvoltarea economică și socială a țării, printre care o hotărâre de guvern și o ordonanță de urgență.",
			SimplifiedContent: "Astăzi, oamenii care conduc țara noastră s-au întâlnit și au hotărât lucruri importante! Au făcut reguli noi care ne vor ajuta pe toți să trăim mai bine.",
			Category:          "economie",
			Source:            "Guvernul României",
			URL:               "https://gov.ro/ro/guvernul/sedinte-guvern/informatie-de-presa-privind-actele-normative-adoptate-in-cadrul-edintei-guvernului-romaniei-din-4-iunie-2025",
			IsNew:             true,
		},
		{
			ID:                "sed_03_Iun",
			Date:              "3 iunie 2025",
			Title:             "Ședința anterioară a Guvernului",
			OriginalContent:   "În ședința precedentă au fost discutate aspecte referitoare la bugetul de stat...",
			SimplifiedContent: "Ieri, echipa care conduce țara a vorbit despre banii pe care îi avem pentru a face lucruri frumoase! Au plănuit cum să cheltuiască banii pentru școli, parcuri și drumuri mai bune!",
			Category:          "economie",
			Source:            "Guvernul României",
			URL:               "https://gov.ro/ro/guvernul/sedinte-guvern/informatii-sedinta-03-iunie",
		},
		{
			ID:                "hg_123_2024",
			Date:              "2024-01-15",
			Title:             "Hotărâre de Guvern nr. 123/2024",
			OriginalContent:   "Conținut exemplu pentru hotărârea de guvern privind sănătatea publică.",
			SimplifiedContent: "Versiune simplificată",
			Category:          "sanatate",
			Source:            "Ministerul Sănătății",
		},
		{
			ID:                "oug_45_2024",
			Date:              "2024-02-20",
			Title:             "Ordonanță de urgență nr. 45/2024",
			OriginalContent:   "Conținut exemplu pentru ordonanța de urgență privind educația.",
			SimplifiedContent: "Versiune simplificată",
			Category:          "educatie",
			Source:            "Ministerul Educației",
		},
	}
}
