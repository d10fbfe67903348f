package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
)

// validate checks the form structs below via their struct tags. One shared
// instance: the validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

type questionForm struct {
	Title   string `validate:"required,max=200"`
	Message string `validate:"max=10000"`
}

type messageForm struct {
	Message string `validate:"required,max=10000"`
}

type tagForm struct {
	Name string `validate:"required,max=40"`
}

// checkForm runs the validator and converts the first failure into the
// application's validation error so writeError maps it to a 400.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.ValidationFailed(strings.ToLower(fe.Field()),
			fmt.Sprintf("field %s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperror.ValidationFailed("", "invalid form input")
}

// pathID extracts a positive integer id from a URL path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}

// parseVote decodes the vote form value, "Option,targetID,targetKind",
// e.g. "Upvote,12,question".
func parseVote(value string) (model.VoteOption, model.Target, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return "", model.Target{}, apperror.ValidationFailed("vote",
			fmt.Sprintf("malformed vote value %q", value))
	}

	option := model.VoteOption(parts[0])
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", model.Target{}, apperror.ValidationFailed("vote",
			fmt.Sprintf("malformed vote target id %q", parts[1]))
	}

	target := model.Target{Kind: model.TargetKind(parts[2]), ID: id}
	return option, target, nil
}
