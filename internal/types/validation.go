package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// storyRules carries the validation tags for a story about to be saved.
type storyRules struct {
	PrimaryLPs       []string `validate:"dive,lp"`
	SecondaryLPs     []string `validate:"dive,lp"`
	Strength         int      `validate:"min=1,max=5"`
	QuestionsMatched []string `validate:"dive,required"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// RegisterValidation only fails on an empty tag or nil func.
	_ = validate.RegisterValidation("lp", func(fl validator.FieldLevel) bool {
		return IsValidLP(fl.Field().String())
	})
	return validate
}

// Validate checks a story before it is persisted: strength is 1-5 and every
// LP id is in the catalog. The title may be empty, like any other draft field.
func (s *Story) Validate() error {
	rules := storyRules{
		PrimaryLPs:       s.PrimaryLPs(),
		SecondaryLPs:     s.SecondaryLPs(),
		Strength:         s.Strength,
		QuestionsMatched: s.QuestionsMatched,
	}
	if err := newValidator().Struct(rules); err != nil {
		return fmt.Errorf("invalid story: %w", err)
	}
	return nil
}
