package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/service"
)

// AnswerHandler serves the new-answer form and answer mutations.
type AnswerHandler struct {
	answers   *service.AnswerService
	questions *service.QuestionService

	formTmpl *template.Template
	logger   *slog.Logger
}

func NewAnswerHandler(
	answers *service.AnswerService,
	questions *service.QuestionService,
	templateDir string,
	logger *slog.Logger,
) (*AnswerHandler, error) {
	formTmpl, err := loadPage(templateDir, "answer_form.html")
	if err != nil {
		return nil, err
	}

	return &AnswerHandler{
		answers:   answers,
		questions: questions,
		formTmpl:  formTmpl,
		logger:    logger,
	}, nil
}

type answerFormPage struct {
	Question *model.Question
	Answer   *model.Answer
}

// HandleNewForm serves the answer form under the question being answered.
func (h *AnswerHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	question, err := h.questions.Get(r.Context(), questionID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	render(w, h.logger, h.formTmpl, answerFormPage{Question: question})
}

// HandleCreate posts the answer and returns to the question.
func (h *AnswerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := messageForm{Message: r.PostFormValue("message")}
	if err := checkForm(form); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.answers.Create(r.Context(), questionID, form.Message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}

// HandleEditForm serves the answer form pre-filled for editing.
func (h *AnswerHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	answer, err := h.answers.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	question, err := h.questions.Get(r.Context(), answer.QuestionID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	render(w, h.logger, h.formTmpl, answerFormPage{Question: question, Answer: answer})
}

func (h *AnswerHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	answer, err := h.answers.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := messageForm{Message: r.PostFormValue("message")}
	if err := checkForm(form); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.answers.Update(r.Context(), id, form.Message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", answer.QuestionID), http.StatusSeeOther)
}

// HandleDelete removes one answer and returns to its question.
func (h *AnswerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	answerID, err := pathID(r, "answerID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.answers.Delete(r.Context(), answerID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}
