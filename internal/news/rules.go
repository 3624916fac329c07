package news

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Boost is a themed group of terms that raises an article's rank score.
type Boost struct {
	Name   string   `yaml:"name"`
	Terms  []string `yaml:"terms"`
	Weight float64  `yaml:"weight"`
}

// Ruleset is the classification and scoring configuration. Keyword matching
// is substring-based and accent-sensitive, so accented and unaccented
// variants are both enumerated where sources may use either.
type Ruleset struct {
	// Entities is the hard allow-list: a mention accepts the article outright.
	Entities []string `yaml:"entities"`

	// Negative vetoes an article before any positive keyword is considered.
	Negative []string `yaml:"negative"`

	// Positive is keyed by section ID; the "default" entry serves sections
	// without a list of their own.
	Positive map[string][]string `yaml:"positive"`

	// Health is the generic health vocabulary required from sources that are
	// not health-focused.
	Health []string `yaml:"health"`

	Boosts []Boost `yaml:"boosts"`

	StrategicTerms  []string `yaml:"strategic_terms"`
	StrategicWeight float64  `yaml:"strategic_weight"`

	EventTerms   []string `yaml:"event_terms"`
	EventPenalty float64  `yaml:"event_penalty"`

	ReputableDomains []string `yaml:"reputable_domains"`
	ReputableWeight  float64  `yaml:"reputable_weight"`

	TechSections []string `yaml:"tech_sections"`
	TechWeight   float64  `yaml:"tech_weight"`

	// Extractor and pipeline block lists.
	BlockedAnchorText []string `yaml:"blocked_anchor_text"`
	BlockedURLParts   []string `yaml:"blocked_url_parts"`
	BlockedTitles     []string `yaml:"blocked_titles"`
}

// LoadRules reads the ruleset from a YAML file, falling back to the built-in
// defaults when the file does not exist.
func LoadRules(path string) (*Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRuleset(), nil
		}
		return nil, err
	}
	defer f.Close()

	var rs Ruleset
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if len(rs.Positive["default"]) == 0 {
		return nil, fmt.Errorf("rules %s: positive.default must not be empty", path)
	}
	rs.normalize()
	return &rs, nil
}

// normalize lowers every keyword once so matching never re-lowers lists.
func (r *Ruleset) normalize() {
	lower := func(list []string) {
		for i := range list {
			list[i] = strings.ToLower(strings.TrimSpace(list[i]))
		}
	}
	lower(r.Entities)
	lower(r.Negative)
	for _, list := range r.Positive {
		lower(list)
	}
	lower(r.Health)
	for i := range r.Boosts {
		lower(r.Boosts[i].Terms)
	}
	lower(r.StrategicTerms)
	lower(r.EventTerms)
	lower(r.ReputableDomains)
	lower(r.BlockedAnchorText)
	lower(r.BlockedURLParts)
	lower(r.BlockedTitles)
}

func (r *Ruleset) positiveFor(section string) []string {
	if list, ok := r.Positive[section]; ok && len(list) > 0 {
		return list
	}
	return r.Positive["default"]
}

// containsAny does plain case-blind substring matching; text must already be
// lower-cased and keywords come pre-lowered from normalize.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// DefaultRuleset mirrors configs/rules.yaml. Bare "sus" and bare "ia"/"ai"
// are deliberately absent: substring matching would hit "suspeito" or "dia".
// Multi-word phrases cover those topics instead.
func DefaultRuleset() *Ruleset {
	rs := &Ruleset{
		Entities: []string{
			"unimed", "hapvida", "amil", "bradesco saúde", "bradesco saude",
			"sulamérica", "sulamerica", "notredame intermédica", "notredame intermedica",
			"rede d'or", "rede dor", "dasa", "fleury", "oncoclínicas", "oncoclinicas",
			"albert einstein", "sírio-libanês", "sirio-libanes",
			"conexa saúde", "conexa saude", "memed", "alice saúde", "alice saude",
		},
		Negative: []string{
			// crime and tragedy
			"assassinato", "homicídio", "homicidio", "feminicídio", "feminicidio",
			"tiroteio", "esfaquea", "atropela", "acidente", "tragédia", "tragedia",
			"crime", "polícia prende", "policia prende", "preso por", "presa por",
			// municipal public-health routine
			"prefeitura", "ubs", "upa ", "posto de saúde", "posto de saude",
			"secretaria municipal", "mutirão", "mutirao",
			"campanha de vacinação", "campanha de vacinacao",
			// off-topic lifestyle and entertainment
			"receita de", "horóscopo", "horoscopo", "novela", "celebridade", "bbb",
			"futebol", "signo",
			// excluded disease beats
			"dengue", "chikungunya", "gripe aviária", "gripe aviaria",
			// foreign politics noise
			"eleição", "eleicao", "election", "trump", "biden", "republican", "democrat",
		},
		Positive: map[string][]string{
			"default": {
				// digital health
				"saúde digital", "saude digital", "digital health", "telemedicina",
				"telessaúde", "telessaude", "telehealth", "teleconsulta",
				"healthtech", "health tech", "prontuário eletrônico", "prontuario eletronico",
				"receita digital", "e-prescription", "prescrição eletrônica", "prescricao eletronica",
				"inteligência artificial", "inteligencia artificial", "artificial intelligence",
				"machine learning", "chatgpt", "openai", "wearable", "startup",
				// payers and providers
				"plano de saúde", "plano de saude", "planos de saúde", "planos de saude",
				"operadora", "seguradora", "saúde suplementar", "saude suplementar",
				"hospita", "laboratório", "laboratorio", "health plan", "health insur",
				"insurer", "payer", "medicare", "medicaid", "value-based",
				// mental health and wellness
				"saúde mental", "saude mental", "mental health", "burnout",
				"ansiedade", "depressão", "depressao", "wellness", "bem-estar", "bem estar",
				"fitness", "longevity", "longevidade", "obesity", "obesidade",
				"sleep", "nutrition", "nutrição", "nutricao", "workout",
			},
			SectionBrasil: {
				// stricter operator/SUS vocabulary for the domestic section
				"operadora", "plano de saúde", "plano de saude",
				"planos de saúde", "planos de saude", "saúde suplementar", "saude suplementar",
				"do sus", "no sus", "pelo sus", "sus ",
				"hospita", "laboratório", "laboratorio", "clínica", "clinica",
				"telemedicina", "saúde digital", "saude digital", "healthtech",
				"prontuário eletrônico", "prontuario eletronico", "receita digital",
				"seguradora", "medicina diagnóstica", "medicina diagnostica",
				"saúde mental", "saude mental",
			},
		},
		Health: []string{
			"saúde", "saude", "health", "hospita", "medicina", "médic", "medic",
			"clínic", "clinic", "paciente", "patient", "farmác", "farmac", "pharma",
		},
		Boosts: []Boost{
			{
				Name:   "telehealth",
				Terms:  []string{"telemedicina", "telessaúde", "telessaude", "telehealth", "teleconsulta"},
				Weight: 6,
			},
			{
				Name: "mental-health",
				Terms: []string{
					"saúde mental", "saude mental", "mental health",
					"burnout", "ansiedade", "depressão", "depressao",
				},
				Weight: 5,
			},
			{
				Name: "ai",
				Terms: []string{
					"inteligência artificial", "inteligencia artificial",
					"artificial intelligence", "machine learning", "generative ai",
					"ai-powered", "chatgpt", "openai",
				},
				Weight: 6,
			},
			{
				Name: "operators",
				Terms: []string{
					"operadora", "plano de saúde", "plano de saude",
					"planos de saúde", "planos de saude", "saúde suplementar",
					"saude suplementar", "health plan", "insurer", "payer",
				},
				Weight: 5,
			},
			{
				Name: "e-prescription",
				Terms: []string{
					"receita digital", "prescrição eletrônica", "prescricao eletronica",
					"e-prescription", "memed",
				},
				Weight: 4,
			},
		},
		StrategicTerms: []string{
			"fusão", "fusao", "aquisição", "aquisicao", "merger", "acquisition",
			"m&a", "rodada de", "aporte", "captação", "captacao", "funding",
			"série a", "serie a", "series a", "series b", "ipo",
			"parceria", "partnership", "joint venture",
		},
		StrategicWeight: 6,
		EventTerms: []string{
			"inaugura", "inauguração", "inauguracao", "congresso", "feira",
			"evento", "prêmio", "premio", "premiação", "premiacao", "award",
			"cerimônia", "cerimonia", "conference", "summit",
			"simpósio", "simposio", "workshop",
		},
		EventPenalty: 4,
		ReputableDomains: []string{
			"valor.globo.com", "braziljournal.com", "neofeed.com.br",
			"pipelinevalor.globo.com", "statnews.com", "fiercehealthcare.com",
			"modernhealthcare.com", "bloomberg.com", "ft.com", "wsj.com",
		},
		ReputableWeight: 2,
		TechSections:    []string{SectionHealthtechs},
		TechWeight:      1.5,
		BlockedAnchorText: []string{
			"assine", "assinar", "login", "cadastre-se", "cookies",
			"política de privacidade", "politica de privacidade",
			"newsletter", "podcast", "subscribe",
		},
		BlockedURLParts: []string{
			"/tag/", "/tags/", "/categoria/", "/category/", "/autor/", "/author/",
			"/page/", "/sobre", "/about", "/contato", "/contact",
			"/podcast", "/videos", "/webinar", "/revista/", "/panorama/", "/edicao/",
		},
		BlockedTitles: []string{
			"leia mais", "saiba mais", "clique aqui", "veja também", "veja tambem",
			"confira as", "assine já", "assine ja",
		},
	}
	rs.normalize()
	return rs
}
