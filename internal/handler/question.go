package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/service"
)

// QuestionHandler serves the question list, the detail page, the add/edit
// forms, voting, and deletion.
type QuestionHandler struct {
	questions *service.QuestionService
	answers   *service.AnswerService
	comments  *service.CommentService
	tags      *service.TagService
	votes     *service.VoteService

	listTmpl   *template.Template
	detailTmpl *template.Template
	formTmpl   *template.Template
	logger     *slog.Logger
}

func NewQuestionHandler(
	questions *service.QuestionService,
	answers *service.AnswerService,
	comments *service.CommentService,
	tags *service.TagService,
	votes *service.VoteService,
	templateDir string,
	logger *slog.Logger,
) (*QuestionHandler, error) {
	listTmpl, err := loadPage(templateDir, "list.html")
	if err != nil {
		return nil, err
	}
	detailTmpl, err := loadPage(templateDir, "question.html")
	if err != nil {
		return nil, err
	}
	formTmpl, err := loadPage(templateDir, "question_form.html")
	if err != nil {
		return nil, err
	}

	return &QuestionHandler{
		questions:  questions,
		answers:    answers,
		comments:   comments,
		tags:       tags,
		votes:      votes,
		listTmpl:   listTmpl,
		detailTmpl: detailTmpl,
		formTmpl:   formTmpl,
		logger:     logger,
	}, nil
}

type listPage struct {
	Questions       []model.QuestionSummary
	SelectedSorting string
	SelectedOrder   string
}

// HandleList serves GET / and GET /list with optional order_by and
// order_direction query parameters. Unknown values fall back to
// submission_time/desc inside the service.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	orderBy := r.URL.Query().Get("order_by")
	orderDirection := r.URL.Query().Get("order_direction")
	if orderBy == "" {
		orderBy = "submission_time"
	}
	if orderDirection == "" {
		orderDirection = "desc"
	}

	questions, err := h.questions.List(r.Context(), orderBy, orderDirection)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	render(w, h.logger, h.listTmpl, listPage{
		Questions:       questions,
		SelectedSorting: orderBy,
		SelectedOrder:   orderDirection,
	})
}

// detailPage is everything the question page shows: the question, its
// answers with their comments, the question's own comments, and its tags.
type detailPage struct {
	Question         *model.Question
	Answers          []model.Answer
	Tags             []model.Tag
	AllTags          []model.Tag
	QuestionComments []model.Comment
	AnswerComments   map[int64][]model.Comment
}

// HandleDetail serves GET and POST /question/{id}. Only the GET counts as a
// view: the post-vote redisplay arrives as POST via the 307 redirect and
// must leave view_number alone.
func (h *QuestionHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if r.Method == http.MethodGet {
		if err := h.questions.IncrementViews(r.Context(), id); err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	answers, err := h.answers.ListForQuestion(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	comments, err := h.comments.ListForQuestion(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	tags, err := h.tags.ListForQuestion(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	allTags, err := h.tags.ListAll(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	page := detailPage{
		Question:       question,
		Answers:        answers,
		Tags:           tags,
		AllTags:        allTags,
		AnswerComments: make(map[int64][]model.Comment),
	}
	for _, c := range comments {
		switch c.Target.Kind {
		case model.TargetQuestion:
			page.QuestionComments = append(page.QuestionComments, c)
		case model.TargetAnswer:
			page.AnswerComments[c.Target.ID] = append(page.AnswerComments[c.Target.ID], c)
		}
	}

	render(w, h.logger, h.detailTmpl, page)
}

type questionFormPage struct {
	Question *model.Question
}

// HandleAddForm serves the empty question form.
func (h *QuestionHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, h.formTmpl, questionFormPage{})
}

// HandleAdd creates the question and redirects to its detail page.
func (h *QuestionHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := questionForm{
		Title:   r.PostFormValue("title"),
		Message: r.PostFormValue("message"),
	}
	if err := checkForm(form); err != nil {
		writeError(w, h.logger, err)
		return
	}

	question, err := h.questions.Create(r.Context(), form.Title, form.Message)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", question.ID), http.StatusSeeOther)
}

// HandleEditForm serves the question form pre-filled with the existing
// question.
func (h *QuestionHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	render(w, h.logger, h.formTmpl, questionFormPage{Question: question})
}

func (h *QuestionHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := questionForm{
		Title:   r.PostFormValue("title"),
		Message: r.PostFormValue("message"),
	}
	if err := checkForm(form); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.questions.Update(r.Context(), id, form.Title, form.Message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", id), http.StatusSeeOther)
}

// HandleDelete removes the question with everything attached to it and
// returns to the list.
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, "/list", http.StatusSeeOther)
}

// HandleVote applies a vote submitted from the detail page and redirects
// back to it. The redirect is 307 so the browser re-issues a POST: the
// redisplay must not run the GET-only view increment, otherwise every vote
// would also count as a view.
func (h *QuestionHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	option, target, err := parseVote(r.PostFormValue("vote"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.votes.HandleVote(r.Context(), option, target); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", id), http.StatusTemporaryRedirect)
}
