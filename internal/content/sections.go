// Package content defines the fixed registry of institutional sections and
// the structured contact information embedded in the contact section.
package content

// Placeholder is shown wherever a section exists without published content.
const Placeholder = "Conteúdo em atualização"

// Section describes one reserved institutional text slot. The registry is
// fixed at compile time; admins edit the content but never the slug.
type Section struct {
	Slug         string `json:"slug"`
	Label        string `json:"label"`
	DefaultTitle string `json:"default_title"`
	ContentHelp  string `json:"content_help"`
	SummaryHelp  string `json:"summary_help,omitempty"`
	ImageHelp    string `json:"image_help,omitempty"`
}

// Sections lists every reserved section in display order.
var Sections = []Section{
	{
		Slug:         "inicio",
		Label:        "Texto da Home",
		DefaultTitle: "Bem-vindo(a) ao Projeto Doce Esperança",
		ContentHelp:  "Texto de abertura exibido na página inicial.",
		ImageHelp:    "Imagem de destaque mostrada no topo da página inicial.",
	},
	{
		Slug:         "missao",
		Label:        "Missão",
		DefaultTitle: "Nossa missão",
		ContentHelp:  "Descreva a missão da ONG apresentada na página inicial e na página Sobre.",
	},
	{
		Slug:         "principios",
		Label:        "Princípios e Atuação",
		DefaultTitle: "Princípios e atuação",
		ContentHelp:  "Liste os princípios e áreas de atuação destacados na página inicial.",
	},
	{
		Slug:         "sobre",
		Label:        "Texto da página Sobre",
		DefaultTitle: "Sobre a Doce Esperança",
		ContentHelp:  "Conte a história da ONG e destaque seus diferenciais na página Sobre.",
		ImageHelp:    "Imagem apresentada no topo da página Sobre.",
	},
	{
		Slug:         "contato",
		Label:        "Texto da página Contato",
		DefaultTitle: "Fale com a Doce Esperança",
		ContentHelp:  "Inclua endereço, horários, canais de contato e links úteis. Esse conteúdo também aparece no rodapé.",
		SummaryHelp:  "Informe o e-mail principal para receber mensagens do formulário de contato.",
	},
	{
		Slug:         "placeholder_parceiros",
		Label:        "Mensagem - parceiros indisponíveis",
		DefaultTitle: "Parcerias em atualização",
		ContentHelp:  "Mensagem exibida quando não há parceiros cadastrados nas páginas Início e Projetos.",
	},
	{
		Slug:         "placeholder_produtos",
		Label:        "Mensagem - produtos artesanais indisponíveis",
		DefaultTitle: "Produtos em atualização",
		ContentHelp:  "Mensagem exibida quando não há materiais ou produtos artesanais cadastrados na página Doação.",
	},
	{
		Slug:         "placeholder_transparencia",
		Label:        "Mensagem - documentos de transparência indisponíveis",
		DefaultTitle: "Transparência em atualização",
		ContentHelp:  "Mensagem exibida quando não há documentos de transparência publicados.",
	},
	{
		Slug:         "placeholder_apoios",
		Label:        "Mensagem - apoios indisponíveis",
		DefaultTitle: "Apoios em atualização",
		ContentHelp:  "Mensagem exibida quando não há registros de apoio cadastrados na página Projetos.",
	},
	{
		Slug:         "placeholder_voluntarios",
		Label:        "Mensagem - voluntariado indisponível",
		DefaultTitle: "Voluntariado em atualização",
		ContentHelp:  "Mensagem exibida quando não há voluntários cadastrados na página Projetos.",
	},
	{
		Slug:         "placeholder_galeria",
		Label:        "Mensagem - galeria vazia",
		DefaultTitle: "Galeria em atualização",
		ContentHelp:  "Mensagem exibida quando não há itens publicados na galeria de fotos.",
	},
}

// SectionMap indexes Sections by slug.
var SectionMap = func() map[string]Section {
	m := make(map[string]Section, len(Sections))
	for _, s := range Sections {
		m[s.Slug] = s
	}
	return m
}()

// Slugs lists the reserved slugs in registry order.
var Slugs = func() []string {
	out := make([]string, len(Sections))
	for i, s := range Sections {
		out[i] = s.Slug
	}
	return out
}()

// IsReservedSlug reports whether slug belongs to the fixed registry.
func IsReservedSlug(slug string) bool {
	_, ok := SectionMap[slug]
	return ok
}
