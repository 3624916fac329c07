// Package render turns a curated digest into the HTML newsletter.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/saudenews/radar/internal/news"
)

// Subject builds the email subject line for the digest's reference date.
func Subject(d *news.Digest) string {
	return fmt.Sprintf("Principais notícias de Saúde – Brasil e Mundo · %s", d.Date.Format("02/01/2006"))
}

type sectionView struct {
	Emoji    string
	Label    string
	Subtitle string
	Articles []news.Article
}

type digestView struct {
	Date     string
	TopTitle string
	Top      []news.Article
	Sections []sectionView
}

var sectionEmoji = map[string]string{
	news.SectionBrasil:      "🇧🇷",
	news.SectionMundo:       "🌍",
	news.SectionHealthtechs: "🚀",
	news.SectionWellness:    "🧘",
}

// HTML renders the newsletter: header, cross-section top list, one block per
// catalog section (empty sections keep a placeholder so partial source
// failures degrade visibly, not silently), footer.
func HTML(d *news.Digest, catalog *news.Catalog) (string, error) {
	view := digestView{
		Date:     d.Date.Format("02/01/2006"),
		TopTitle: fmt.Sprintf("Top %d do dia", len(d.Top)),
		Top:      d.Top,
	}
	for _, sec := range catalog.Sections {
		emoji := sectionEmoji[sec.ID]
		if emoji == "" {
			emoji = "📰"
		}
		view.Sections = append(view.Sections, sectionView{
			Emoji:    emoji,
			Label:    sec.Label,
			Subtitle: sec.Subtitle,
			Articles: d.Sections[sec.ID],
		})
	}

	var b strings.Builder
	if err := digestTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="pt-br">
<head>
  <meta charset="UTF-8" />
  <title>Principais notícias de Saúde – Brasil e Mundo</title>
</head>
<body style="margin:0;padding:0;background-color:#f3f4f6;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;">
  <table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="background-color:#f3f4f6;padding:24px 0;">
    <tr>
      <td align="center">
        <table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="max-width:720px;background-color:#ffffff;border-radius:16px;overflow:hidden;box-shadow:0 10px 25px rgba(15,23,42,0.12);">
          <tr>
            <td style="background-color:#2563eb;padding:20px 24px 18px 24px;color:#ecfeff;">
              <div style="font-size:11px;letter-spacing:0.08em;text-transform:uppercase;opacity:0.85;">Curadoria diária · {{.Date}}</div>
              <h1 style="margin:4px 0 6px 0;font-size:22px;">Principais notícias de Saúde – Brasil e Mundo</h1>
              <p style="margin:0;font-size:13px;max-width:540px;line-height:1.5;opacity:0.95;">
                Radar rápido de movimentos em operadoras, hospitais, planos de saúde, laboratórios, healthtechs e tendências de bem-estar.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding:18px 24px 4px 24px;">
              <h2 style="font-size:15px;margin:0 0 4px 0;color:#111827;">⭐ {{.TopTitle}}</h2>
              {{if .Top}}
              <ul style="padding-left:18px;margin-top:8px;margin-bottom:16px;">
                {{range .Top}}
                <li style="margin-bottom:6px;">
                  <a href="{{.URL}}" style="color:#111827;text-decoration:none;font-weight:600;" target="_blank">{{.Title}}</a>
                  <span style="color:#6b7280;font-size:12px;"> &nbsp;· {{.SourceName}}</span>
                </li>
                {{end}}
              </ul>
              {{else}}
              <p style="color:#6b7280;font-size:13px">Sem destaques suficientes para o Top de hoje.</p>
              {{end}}
            </td>
          </tr>
          {{range .Sections}}
          <tr>
            <td style="padding:8px 24px 0 24px;">
              <h2 style="font-size:15px;margin:0 0 4px 0;color:#111827;">{{.Emoji}} {{.Label}}</h2>
              <p style="margin:0 0 6px 0;font-size:12px;color:#6b7280;">{{.Subtitle}}</p>
              {{if .Articles}}
              <ul style="padding-left:18px;margin-top:4px;margin-bottom:12px;">
                {{range .Articles}}
                <li style="margin-bottom:6px;">
                  <a href="{{.URL}}" style="color:#0052cc;text-decoration:none;font-weight:500;" target="_blank">{{.Title}}</a>
                  <span style="color:#777;font-size:12px;"> &nbsp;· {{.SourceName}}</span>
                  {{if .Summary}}<div style="color:#4b5563;font-size:12px;margin-top:2px;">{{.Summary}}</div>{{end}}
                </li>
                {{end}}
              </ul>
              {{else}}
              <p style="color:#666;font-size:13px">Sem notícias relevantes nesta seção nas últimas horas.</p>
              {{end}}
            </td>
          </tr>
          {{end}}
          <tr>
            <td style="padding:14px 24px 18px 24px;border-top:1px solid #e5e7eb;font-size:11px;color:#9ca3af;background-color:#f9fafb;">
              <p style="margin:0 0 4px 0;">
                Curadoria automática. Sempre que necessário, valide os detalhes diretamente nas fontes originais.
              </p>
              <p style="margin:0;">
                Quer ajustar fontes, seções ou público-alvo desta newsletter? Fale com a equipe responsável pela News Saúde.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))
