package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/service"
)

// CommentHandler serves commenting on questions and answers, and comment
// edit/delete.
type CommentHandler struct {
	comments *service.CommentService
	answers  *service.AnswerService

	formTmpl *template.Template
	logger   *slog.Logger
}

func NewCommentHandler(
	comments *service.CommentService,
	answers *service.AnswerService,
	templateDir string,
	logger *slog.Logger,
) (*CommentHandler, error) {
	formTmpl, err := loadPage(templateDir, "comment_form.html")
	if err != nil {
		return nil, err
	}

	return &CommentHandler{
		comments: comments,
		answers:  answers,
		formTmpl: formTmpl,
		logger:   logger,
	}, nil
}

// HandleNewQuestionComment posts a comment on a question.
func (h *CommentHandler) HandleNewQuestionComment(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	message, err := h.commentMessage(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.comments.Create(r.Context(), model.QuestionTarget(questionID), message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}

// HandleNewAnswerComment posts a comment on an answer and redirects to the
// answer's question.
func (h *CommentHandler) HandleNewAnswerComment(w http.ResponseWriter, r *http.Request) {
	answerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	answer, err := h.answers.Get(r.Context(), answerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	message, err := h.commentMessage(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.comments.Create(r.Context(), model.AnswerTarget(answerID), message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", answer.QuestionID), http.StatusSeeOther)
}

type commentFormPage struct {
	Comment *model.Comment
}

// HandleEditForm serves the edit form pre-filled with the comment.
func (h *CommentHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	render(w, h.logger, h.formTmpl, commentFormPage{Comment: comment})
}

// HandleEdit applies the edit (message replaced, submission time refreshed,
// edited_count bumped) and returns to the owning question.
func (h *CommentHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	message, err := h.commentMessage(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.comments.Update(r.Context(), id, message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.redirectToOwner(w, r, comment)
}

func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Resolve the owning question before the row disappears.
	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.redirectToOwner(w, r, comment)
}

func (h *CommentHandler) commentMessage(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("parsing form: %w", err)
	}

	form := messageForm{Message: r.PostFormValue("message")}
	if err := checkForm(form); err != nil {
		return "", err
	}
	return form.Message, nil
}

// redirectToOwner sends the browser to the question the comment lives
// under, resolving through the answer when the comment is attached to one.
func (h *CommentHandler) redirectToOwner(w http.ResponseWriter, r *http.Request, comment *model.Comment) {
	questionID := comment.Target.ID
	if comment.Target.Kind == model.TargetAnswer {
		answer, err := h.answers.Get(r.Context(), comment.Target.ID)
		if err != nil {
			// The answer may be gone already; the list page is always safe.
			http.Redirect(w, r, "/list", http.StatusSeeOther)
			return
		}
		questionID = answer.QuestionID
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}
