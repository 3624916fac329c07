package news

import "testing"

func TestScore(t *testing.T) {
	rules := DefaultRuleset()

	tests := []struct {
		name    string
		article Article
		want    float64
	}{
		{
			// 2 positive hits (operadora, hospita) + operators boost 5
			// + strategic 6.
			name: "merger between operator and hospital",
			article: Article{
				Title:   "Operadora Unimed anuncia fusão com hospital",
				URL:     "https://example.com/noticia",
				Section: SectionBrasil,
			},
			want: 13.0,
		},
		{
			// 2 positive hits, then the event penalty drags it under zero.
			name: "ribbon cutting is penalized",
			article: Article{
				Title:   "Hospital inaugura nova ala de clínica",
				URL:     "https://example.com/ala",
				Section: SectionBrasil,
			},
			want: -2.0,
		},
		{
			// 3 positive hits + telehealth 6 + mental-health 5 + ai 6;
			// theme boosts stack.
			name: "boosts are additive across themes",
			article: Article{
				Title:   "Telemedicina e inteligência artificial avançam na saúde mental",
				URL:     "https://example.com/temas",
				Section: SectionMundo,
			},
			want: 20.0,
		},
		{
			name: "reputable domain adds its weight",
			article: Article{
				Title:   "Telehealth expands after new rules",
				URL:     "https://www.statnews.com/2025/12/08/telehealth",
				Section: SectionMundo,
			},
			want: 9.0,
		},
		{
			name: "tech section carries a small bonus",
			article: Article{
				Title:   "Telehealth expands after new rules",
				URL:     "https://example.com/telehealth",
				Section: SectionHealthtechs,
			},
			want: 8.5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rules.Score(tc.article)
			if got != tc.want {
				t.Fatalf("Score(%q) = %v, want %v", tc.article.Title, got, tc.want)
			}
		})
	}
}

func TestScoreIsPure(t *testing.T) {
	rules := DefaultRuleset()
	a := Article{
		Title:   "Plano de saúde firma parceria com healthtech de telemedicina",
		URL:     "https://valor.globo.com/empresas/noticia",
		Section: SectionBrasil,
	}

	first := rules.Score(a)
	for i := 0; i < 5; i++ {
		if got := rules.Score(a); got != first {
			t.Fatalf("Score drifted on repeat call: %v then %v", first, got)
		}
	}
}

func TestDomainMatches(t *testing.T) {
	domains := []string{"valor.globo.com", "statnews.com"}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://valor.globo.com/empresas/x", true},
		{"https://www.statnews.com/2025/12/08/x", true},
		{"https://blog.statnews.com/x", true},
		{"https://example.com/statnews.com", false},
		{"not a url", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := domainMatches(tc.url, domains); got != tc.want {
			t.Errorf("domainMatches(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
