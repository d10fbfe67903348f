package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/search"
	"github.com/kfodor/askmate/internal/service"
)

// SearchHandler serves the search page with matched text emphasized.
type SearchHandler struct {
	searcher *service.SearchService

	tmpl   *template.Template
	logger *slog.Logger
}

func NewSearchHandler(searcher *service.SearchService, templateDir string, logger *slog.Logger) (*SearchHandler, error) {
	tmpl, err := loadPage(templateDir, "search.html")
	if err != nil {
		return nil, err
	}

	return &SearchHandler{searcher: searcher, tmpl: tmpl, logger: logger}, nil
}

// searchResultView carries one matched question with its text pre-escaped
// and the phrase occurrences wrapped for emphasis.
type searchResultView struct {
	Question model.Question
	Title    template.HTML
	Message  template.HTML
	Answers  []searchAnswerView
}

type searchAnswerView struct {
	Answer  model.Answer
	Message template.HTML
}

type searchPage struct {
	Phrase   string
	Searched bool
	Results  []searchResultView
}

// HandleSearch serves GET /search. Without a search_phrase it renders just
// the form; with one it lists matching questions, newest first, with every
// occurrence of the phrase highlighted and matching answers attached.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	phrase := strings.TrimSpace(r.URL.Query().Get("search_phrase"))
	if phrase == "" {
		render(w, h.logger, h.tmpl, searchPage{})
		return
	}

	results, err := h.searcher.Search(r.Context(), phrase)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	page := searchPage{Phrase: phrase, Searched: true}
	for _, res := range results {
		view := searchResultView{
			Question: res.Question,
			Title:    search.Highlight(phrase, res.Question.Title),
			Message:  search.Highlight(phrase, res.Question.Message),
		}
		for _, a := range res.MatchingAnswers {
			view.Answers = append(view.Answers, searchAnswerView{
				Answer:  a,
				Message: search.Highlight(phrase, a.Message),
			})
		}
		page.Results = append(page.Results, view)
	}

	render(w, h.logger, h.tmpl, page)
}
