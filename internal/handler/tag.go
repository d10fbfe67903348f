package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/service"
)

// TagHandler serves tagging and untagging of questions. There is no page of
// its own: both operations redirect back to the question.
type TagHandler struct {
	tags   *service.TagService
	logger *slog.Logger
}

func NewTagHandler(tags *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{tags: tags, logger: logger}
}

// HandleAdd attaches a tag to the question. The form carries either a
// free-text name (creating the tag unless the exact name exists) or the id
// of an existing tag from the picker.
func (h *TagHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	existing := r.PostFormValue("tag_id")

	switch {
	case name != "":
		form := tagForm{Name: name}
		if err := checkForm(form); err != nil {
			writeError(w, h.logger, err)
			return
		}
		if _, err := h.tags.AddNewTagToQuestion(r.Context(), questionID, name); err != nil {
			writeError(w, h.logger, err)
			return
		}

	case existing != "":
		tagID, err := strconv.ParseInt(existing, 10, 64)
		if err != nil || tagID <= 0 {
			writeError(w, h.logger, apperror.ValidationFailed("tag_id",
				fmt.Sprintf("invalid tag id %q", existing)))
			return
		}
		if err := h.tags.AddTagToQuestion(r.Context(), questionID, tagID); err != nil {
			writeError(w, h.logger, err)
			return
		}

	default:
		writeError(w, h.logger, apperror.ValidationFailed("name",
			"either a tag name or an existing tag must be given"))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}

// HandleRemove detaches the tag from the question; the tag itself survives.
func (h *TagHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	tagID, err := pathID(r, "tagID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.tags.RemoveTag(r.Context(), questionID, tagID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/question/%d", questionID), http.StatusSeeOther)
}
