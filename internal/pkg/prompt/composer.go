package prompt

import (
	"strconv"
	"strings"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
)

// Composer renders the interviewer instructions around retrieved context and
// the candidate's message. It performs no I/O.
type Composer struct {
	tmpl config.PromptTemplate
}

func NewComposer(tmpl config.PromptTemplate) *Composer {
	return &Composer{tmpl: tmpl}
}

func (c *Composer) Compose(userMessage, context string) string {
	var sb strings.Builder

	sb.WriteString(c.tmpl.Role)
	sb.WriteString("\n\n")

	if strings.TrimSpace(context) == "" {
		sb.WriteString(c.tmpl.EmptyContext)
	} else {
		sb.WriteString(c.tmpl.ContextHeader)
		sb.WriteString("\n")
		sb.WriteString(context)
	}
	sb.WriteString("\n\n")

	sb.WriteString(c.tmpl.RulesHeader)
	for i, rule := range c.tmpl.Rules {
		sb.WriteString("\n")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(rule)
	}
	sb.WriteString("\n\n")

	sb.WriteString(c.tmpl.MessageHeader)
	sb.WriteString("\n")
	sb.WriteString(userMessage)

	return sb.String()
}

