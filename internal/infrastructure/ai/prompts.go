package ai

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
)

const reviewPromptTemplateES = `Sos un revisor de código con experiencia. A partir del contenido de esta pull request, generá un resumen para quien tiene que revisarla.

Respondé SOLO con un JSON válido con esta forma:
{
  "overview": "resumen general en dos o tres oraciones",
  "key_changes": ["cambio relevante"],
  "risks": ["riesgo o punto a mirar con cuidado"]
}

Contenido de la pull request:
%s`

const reviewPromptTemplateEN = `You are an experienced code reviewer. From the content of this pull request, generate a summary for the person who has to review it.

Reply ONLY with valid JSON in this shape:
{
  "overview": "general summary in two or three sentences",
  "key_changes": ["relevant change"],
  "risks": ["risk or spot worth a careful look"]
}

Pull request content:
%s`

// GetReviewPromptTemplate devuelve la plantilla del prompt según el idioma configurado.
func GetReviewPromptTemplate(lang string) string {
	if lang == "en" {
		return reviewPromptTemplateEN
	}
	return reviewPromptTemplateES
}

// BuildReviewContent arma el contenido textual de la PR a partir del espejo
// local: título, descripción, archivos tocados y comentarios existentes.
func BuildReviewContent(pr models.PullRequest, details *models.PullRequestDetails) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Título: %s\n", pr.Title)
	fmt.Fprintf(&b, "Autor: %s\n", pr.Author.Login)
	fmt.Fprintf(&b, "Estado: %s\n", pr.State)
	if pr.Body != "" {
		fmt.Fprintf(&b, "Descripción:\n%s\n", pr.Body)
	}

	if details == nil {
		return b.String()
	}

	if len(details.FileChanges) > 0 {
		b.WriteString("\nArchivos modificados:\n")
		for _, file := range details.FileChanges {
			fmt.Fprintf(&b, "- %s (%s, +%d -%d)\n", file.Path, file.Status, file.Additions, file.Deletions)
		}
	}

	if len(details.Commits) > 0 {
		b.WriteString("\nCommits:\n")
		for _, commit := range details.Commits {
			fmt.Fprintf(&b, "- %s\n", firstLine(commit.Message))
		}
	}

	if len(details.Comments) > 0 {
		b.WriteString("\nComentarios existentes:\n")
		for _, comment := range details.Comments {
			if comment.IsOptimistic() {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", comment.Author.Login, firstLine(comment.Body))
		}
	}

	return b.String()
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
