package generation

import (
	"fmt"
	"strings"

	"github.com/contentforge/contentforge-api/internal/i18n"
)

var systemPrompts = map[i18n.Lang]map[Schema]string{
	i18n.LangUK: {
		SchemaTrends: "Ти експерт з аналізу трендів у соціальних мережах. Твоє завдання - надавати актуальну інформацію про тренди у різних нішах.",
		SchemaIdeas:  "Ти експертний генератор ідей для контенту. Відповідай у форматі JSON.",
	},
	i18n.LangEN: {
		SchemaTrends: "You are an expert in social media trend analysis. Your job is to provide up-to-date information about trends in different niches.",
		SchemaIdeas:  "You are an expert content idea generator. Respond in JSON format.",
	},
}

// BuildPrompt returns the system and user messages for req.
func BuildPrompt(req Request) (system, user string) {
	req = req.normalized()
	system = systemPrompts[req.Lang][req.Schema]
	if req.Schema == SchemaIdeas {
		return system, ideasPrompt(req)
	}
	return system, trendsPrompt(req)
}

func trendsPrompt(req Request) string {
	var b strings.Builder
	if req.Lang == i18n.LangEN {
		fmt.Fprintf(&b, "Analyze current social media trends for the %q niche.\n", req.Niche)
		writeContext(&b, req, "Platform", "Audience", "Style")
		b.WriteString("\nProvide the following information:\n")
		b.WriteString("1. 5 popular hashtags currently used in this niche (especially on Instagram and X/Twitter)\n")
		b.WriteString("2. 3 trending topics or content types that are currently popular in this niche\n\n")
		b.WriteString("Provide the answer in JSON format:\n")
		b.WriteString(`{"hashtags": ["hashtag1", "hashtag2", ...], "trends": ["trend1", "trend2", ...]}`)
		b.WriteString("\n\nImportant: respond ONLY in JSON format, without additional explanations.")
		return b.String()
	}
	fmt.Fprintf(&b, "Проаналізуй поточні тренди у соціальних мережах для ніші %q.\n", req.Niche)
	writeContext(&b, req, "Платформа", "Аудиторія", "Стиль")
	b.WriteString("\nНадай наступну інформацію:\n")
	b.WriteString("1. 5 популярних хештегів, які зараз використовуються у цій ніші (особливо в Instagram та X/Twitter)\n")
	b.WriteString("2. 3 трендові теми або типи контенту, які зараз популярні у цій ніші\n\n")
	b.WriteString("Відповідь надай у форматі JSON:\n")
	b.WriteString(`{"hashtags": ["хештег1", "хештег2", ...], "trends": ["тренд1", "тренд2", ...]}`)
	b.WriteString("\n\nВажливо: відповідай ТІЛЬКИ у форматі JSON, без додаткових пояснень.")
	return b.String()
}

func ideasPrompt(req Request) string {
	var b strings.Builder
	if req.Lang == i18n.LangEN {
		fmt.Fprintf(&b, "Generate %d content ideas on the topic %q.\n", req.Count, req.Niche)
		writeContext(&b, req, "Platform", "Audience", "Style")
		b.WriteString("\nFor each idea provide a title and a short description.\n")
		b.WriteString("Provide the answer in JSON format:\n")
		b.WriteString(`{"ideas": [{"title": "...", "description": "..."}]}`)
		b.WriteString("\n\nImportant: respond ONLY in JSON format, without additional explanations.")
		return b.String()
	}
	fmt.Fprintf(&b, "Згенеруй %d ідей для контенту на тему %q.\n", req.Count, req.Niche)
	writeContext(&b, req, "Платформа", "Аудиторія", "Стиль")
	b.WriteString("\nДля кожної ідеї надай заголовок та короткий опис.\n")
	b.WriteString("Відповідь надай у форматі JSON:\n")
	b.WriteString(`{"ideas": [{"title": "...", "description": "..."}]}`)
	b.WriteString("\n\nВажливо: відповідай ТІЛЬКИ у форматі JSON, без додаткових пояснень.")
	return b.String()
}

func writeContext(b *strings.Builder, req Request, platformLabel, audienceLabel, styleLabel string) {
	for _, line := range []struct{ label, value string }{
		{platformLabel, req.Platform},
		{audienceLabel, req.Audience},
		{styleLabel, req.Style},
	} {
		if line.value != "" {
			fmt.Fprintf(b, "%s: %s\n", line.label, line.value)
		}
	}
}
