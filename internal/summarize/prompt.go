package summarize

import "strings"

const promptHeader = `You are an assistant that writes summaries for an internal press report.
Eres un asistente que redacta resúmenes para un reporte interno de prensa.

Mandatory rules / Reglas obligatorias:
`

const promptRules = `2) Return ONLY one paragraph (no title, no bullets, no headings).
   Devuelve SOLO un párrafo (sin título, sin viñetas, sin encabezados).
3) Do NOT include meta phrases like: "Here's a summary", "Here is", "Resumen:", "A continuación", "In conclusion", etc.
4) Target length: 110–120 words.
5) Focus on facts: what happened, who, where, when, key figures, minimal context.
`

// BuildPrompt creates the summarization prompt. forceLang is "es", "en"
// or empty to ask for the input's own language.
func BuildPrompt(text, titleHint, forceLang string) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("1) ")
	switch forceLang {
	case LangEnglish:
		sb.WriteString("Write the summary in English. Do NOT translate into Spanish.")
	case LangSpanish:
		sb.WriteString("Escribe el resumen en Español. No traduzcas al inglés.")
	default:
		sb.WriteString("Write the summary in the SAME language as the input text. Do NOT translate.")
	}
	sb.WriteString("\n")
	sb.WriteString(promptRules)
	sb.WriteString("\n")
	if titleHint != "" {
		sb.WriteString("TITLE / TÍTULO: ")
		sb.WriteString(titleHint)
		sb.WriteString("\n\n")
	}
	sb.WriteString("TEXT / TEXTO:\n")
	sb.WriteString(text)
	return sb.String()
}
