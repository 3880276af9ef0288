package plugins

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// Default quiz texts.
const (
	quizTitle      = "Question"
	missingQ       = "Question is missing."
	resultCorrect  = "<b>Correct!</b>"
	resultWrong    = "<b>Wrong.</b>"
	quizAnswerSize = 4
)

// Alternative is one answer of a quiz.
type Alternative struct {
	Correct bool
	Text    string
	Result  string
}

// Quiz is a single-choice question with one correct and three wrong answers.
// The position of the correct answer is derived from the block content, so
// rebuilding a page never reshuffles it.
type Quiz struct {
	*chunk.YAML
	ID           string
	Title        string
	Question     string
	Alternatives []Alternative
	Correct      int // index of the correct alternative
}

func newQuiz(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	q := &Quiz{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Required: []string{"correct", "false-1", "false-2", "false-3"},
			Optional: []string{
				"question", "title", "result-correct", "result-false",
				"result-false-1", "result-false-2", "result-false-3",
			},
		}),
		ID:    "quiz-" + region.Hash(),
		Title: orDefault(fields.String("title"), quizTitle),
	}

	switch {
	case fields.Has("question"):
		q.Question = fields.String("question")
	case region.HasPostYAML():
		q.Question = region.PostYAMLContent()
	default:
		q.Question = missingQ
		tell(rep, region, report.Error, "quiz question must be given as question key or after the block")
	}

	q.Correct = answerSlot(region.Hash())
	for i := 1; i < quizAnswerSize; i++ {
		result := orDefault(fields.String(fmt.Sprintf("result-false-%d", i)),
			orDefault(fields.String("result-false"), resultWrong))
		q.Alternatives = append(q.Alternatives, Alternative{
			Text:   fields.String(fmt.Sprintf("false-%d", i)),
			Result: result,
		})
	}
	right := Alternative{
		Correct: true,
		Text:    fields.String("correct"),
		Result:  orDefault(fields.String("result-correct"), resultCorrect),
	}
	q.Alternatives = slices.Insert(q.Alternatives, q.Correct, right)
	return q
}

// answerSlot picks the position of the correct answer from a content hash.
func answerSlot(hash string) int {
	seed, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		seed = 0
	}
	return rand.New(rand.NewPCG(seed, seed)).IntN(quizAnswerSize)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Render implements chunk.Chunk.
func (q *Quiz) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	question, err := inline(ctx, rc, q.Question)
	if err != nil {
		return "", err
	}

	switch rc.Target {
	case pipeline.FormatHTML:
		return q.html(question), nil
	case pipeline.FormatLaTeX:
		var b strings.Builder
		fmt.Fprintf(&b, "\\paragraph{%s}\n%s\n\\begin{enumerate}\n", pipeline.EscapeLaTeX(q.Title), question)
		for _, a := range q.Alternatives {
			fmt.Fprintf(&b, "\\item %s\n", pipeline.EscapeLaTeX(a.Text))
		}
		b.WriteString("\\end{enumerate}")
		return b.String(), nil
	default:
		return "", chunk.ErrNotRenderable
	}
}

func (q *Quiz) html(question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"quiz\" id=\"%s\">\n", q.ID)
	b.WriteString("<div class=\"card-body\">\n")
	fmt.Fprintf(&b, "<h5 class=\"card-title\">%s</h5>\n", escape(q.Title))
	fmt.Fprintf(&b, "<p class=\"card-text\">%s</p>\n", question)
	b.WriteString("</div>\n<ol>\n")
	for i, a := range q.Alternatives {
		fmt.Fprintf(&b, "<li class=\"unselected\" onclick=\"quiz_select('%s', %d)\">%s</li>\n", q.ID, i, escape(a.Text))
	}
	b.WriteString("</ol>\n<div class=\"card-footer\">\n")
	b.WriteString("<div data=\"instructions\"><i>Select the alternative that matches best.</i></div>\n")
	fmt.Fprintf(&b, "<div class=\"visually-hidden\" data=\"confirm\"><i>Sure? Then "+
		"<a href=\"#\" onclick=\"quiz_confirm('%s', %d); return false;\">confirm</a>.</i></div>\n", q.ID, q.Correct)
	for i, a := range q.Alternatives {
		fmt.Fprintf(&b, "<div class=\"visually-hidden\" data=\"%d\">%s</div>\n", i, a.Result)
	}
	b.WriteString("</div>\n</div>")
	return b.String()
}

// UsesPostYAML implements chunk.PostYAMLReader. The prose after the block
// is the question unless a question key is given.
func (q *Quiz) UsesPostYAML() bool { return !q.Fields.Has("question") }

// CSS implements chunk.Styler.
func (q *Quiz) CSS() string { return assets.MustStyle("quiz") }
