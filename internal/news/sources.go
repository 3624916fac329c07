package news

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the static configuration of sections and sources. It is loaded
// once at startup and never mutated during a run.
type Catalog struct {
	Sections []Section `yaml:"sections"`
	Sources  []Source  `yaml:"sources"`
}

// SectionByID returns the section definition, or false when unknown.
func (c *Catalog) SectionByID(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// LoadCatalog reads the source catalog from a YAML file. A missing file falls
// back to the built-in defaults so a fresh checkout can run out of the box.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, err
	}
	defer f.Close()

	var cat Catalog
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("no sections defined")
	}
	for _, s := range c.Sections {
		if s.ID == "" || s.Label == "" {
			return fmt.Errorf("section needs id and label")
		}
		if s.MaxItems <= 0 {
			return fmt.Errorf("section %s: max_items must be positive", s.ID)
		}
	}
	for _, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("source needs a name")
		}
		if src.URL == "" && src.FeedURL == "" {
			return fmt.Errorf("source %s: needs url or feed_url", src.Name)
		}
		if _, ok := c.SectionByID(src.Section); !ok {
			return fmt.Errorf("source %s: unknown section %q", src.Name, src.Section)
		}
	}
	return nil
}

// Section IDs of the digest.
const (
	SectionBrasil      = "brasil"
	SectionMundo       = "mundo"
	SectionHealthtechs = "healthtechs"
	SectionWellness    = "wellness"
)

// DefaultCatalog mirrors configs/sources.yaml and keeps the binary usable
// without any files on disk.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Sections: []Section{
			{
				ID:         SectionBrasil,
				Label:      "Brasil – Saúde & Operadoras",
				Subtitle:   "Movimentos em operadoras, SUS, hospitais, laboratórios e negócios em saúde.",
				MaxItems:   12,
				MaxAgeDays: 2,
			},
			{
				ID:         SectionMundo,
				Label:      "Mundo – Saúde Global",
				Subtitle:   "Sistemas de saúde, regulação, política pública e tendências em grandes mercados.",
				MaxItems:   10,
				MaxAgeDays: 1,
			},
			{
				ID:         SectionHealthtechs,
				Label:      "Healthtechs – Brasil & Mundo",
				Subtitle:   "Startups, big techs em saúde, IA, investimentos e modelos digitais.",
				MaxItems:   8,
				MaxAgeDays: 1,
			},
			{
				ID:         SectionWellness,
				Label:      "Wellness – EUA / Europa",
				Subtitle:   "Bem-estar, saúde mental, performance, fitness e hábitos de longo prazo.",
				MaxItems:   8,
				MaxAgeDays: 1,
			},
		},
		Sources: []Source{
			{
				Name:        "Saúde Digital News",
				Section:     SectionBrasil,
				URL:         "https://saudedigitalnews.com.br",
				FeedURL:     "https://saudedigitalnews.com.br/feed/",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "Medicina S/A",
				Section:     SectionBrasil,
				URL:         "https://medicinasa.com.br",
				FeedURL:     "https://medicinasa.com.br/feed/",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "O Globo – Saúde",
				Section:     SectionBrasil,
				URL:         "https://oglobo.globo.com/saude",
				FeedURL:     "https://oglobo.globo.com/rss/saude/",
				MaxArticles: 2,
			},
			{
				Name:        "Valor Econômico – Empresas",
				Section:     SectionBrasil,
				URL:         "https://valor.globo.com/empresas",
				FeedURL:     "https://valor.globo.com/rss/empresas/",
				MaxArticles: 2,
			},
			{
				Name:        "STAT News",
				Section:     SectionMundo,
				URL:         "https://www.statnews.com",
				FeedURL:     "https://www.statnews.com/feed/",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "Modern Healthcare",
				Section:     SectionMundo,
				URL:         "https://www.modernhealthcare.com",
				FeedURL:     "https://www.modernhealthcare.com/section/rss",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "Fierce Healthcare",
				Section:     SectionMundo,
				URL:         "https://www.fiercehealthcare.com",
				FeedURL:     "https://www.fiercehealthcare.com/rss/xml",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "MobiHealthNews",
				Section:     SectionHealthtechs,
				URL:         "https://www.mobihealthnews.com",
				FeedURL:     "https://www.mobihealthnews.com/feed",
				MaxArticles: 3,
				HealthFocus: true,
			},
			{
				Name:        "Future Health",
				Section:     SectionHealthtechs,
				URL:         "https://futurehealth.cc",
				FeedURL:     "https://futurehealth.cc/feed/",
				MaxArticles: 2,
				HealthFocus: true,
			},
			{
				Name:        "Fitt Insider",
				Section:     SectionWellness,
				URL:         "https://fittinsider.com",
				FeedURL:     "https://fittinsider.com/feed/",
				MaxArticles: 3,
				HealthFocus: true,
			},
		},
	}
}
