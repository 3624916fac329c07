package scraper

import "testing"

const homepage = `<html><body>
<nav>
  <a href="/login">Login</a>
  <a href="/sobre">Sobre nós</a>
</nav>
<main>
  <a href="/noticias/operadora-alfa-compra-hospital-no-interior-paulista">Operadora Alfa anuncia compra de hospital no interior paulista</a>
  <a href="https://outro.example/telemedicina-cresce">Telemedicina cresce 40% entre os planos de saúde em 2025</a>
  <a href="/assinatura">Assine já a nossa newsletter e receba tudo em primeira mão</a>
  <a href="mailto:contato@example.com">Entre em contato com a nossa redação pelo e-mail oficial</a>
  <a href="/curta">Curta</a>
</main>
</body></html>`

func TestExtractLinks(t *testing.T) {
	blocked := []string{"assine", "newsletter"}

	links, err := ExtractLinks(homepage, "https://example.com/saude/", blocked)
	if err != nil {
		t.Fatalf("ExtractLinks: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d: %+v", len(links), links)
	}

	// First-seen document order, relative hrefs resolved against the base.
	if links[0].URL != "https://example.com/noticias/operadora-alfa-compra-hospital-no-interior-paulista" {
		t.Fatalf("relative URL not resolved: %s", links[0].URL)
	}
	if links[0].Text != "Operadora Alfa anuncia compra de hospital no interior paulista" {
		t.Fatalf("unexpected anchor text: %q", links[0].Text)
	}
	if links[1].URL != "https://outro.example/telemedicina-cresce" {
		t.Fatalf("absolute URL changed: %s", links[1].URL)
	}
}

func TestExtractLinksCollapsesWhitespace(t *testing.T) {
	body := `<a href="/n1">
		Operadora  Alfa
		anuncia   compra de hospital no interior
	</a>`

	links, err := ExtractLinks(body, "https://example.com", nil)
	if err != nil {
		t.Fatalf("ExtractLinks: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Text != "Operadora Alfa anuncia compra de hospital no interior" {
		t.Fatalf("whitespace not collapsed: %q", links[0].Text)
	}
}

func TestExtractLinksMinLengthIsRuneBased(t *testing.T) {
	// 35 runes with multi-byte accented characters.
	body := `<a href="/n1">Saúde é prioridade máxima no próximo ano</a>`

	links, err := ExtractLinks(body, "https://example.com", nil)
	if err != nil {
		t.Fatalf("ExtractLinks: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("rune-length anchor dropped: %+v", links)
	}
}

func TestExtractLinksToleratesBrokenMarkup(t *testing.T) {
	body := `<div><a href="/ok">Operadora Alfa anuncia compra de hospital regional<p></div></a><table><tr>`

	links, err := ExtractLinks(body, "https://example.com", nil)
	if err != nil {
		t.Fatalf("broken markup must not error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link from broken markup, got %d", len(links))
	}
}
