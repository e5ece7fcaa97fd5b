package core

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// AnswerCategory identifies one section of the questionnaire.
type AnswerCategory int

const (
	CategoryAcademics AnswerCategory = iota + 1
	CategoryFields
	CategoryActivities
	CategoryGoals
	CategoryEnvironment
)

// AnswerCategories lists every questionnaire section in vectorization order.
var AnswerCategories = []AnswerCategory{
	CategoryAcademics,
	CategoryFields,
	CategoryActivities,
	CategoryGoals,
	CategoryEnvironment,
}

var answerCategoryNames = map[AnswerCategory]string{
	CategoryAcademics:   "academics",
	CategoryFields:      "fields",
	CategoryActivities:  "activities",
	CategoryGoals:       "goals",
	CategoryEnvironment: "environment",
}

func (c AnswerCategory) String() string {
	if name, ok := answerCategoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("AnswerCategory(%d)", int(c))
}

// ParseAnswerCategory maps a wire name to its category. Matching is case-insensitive.
func ParseAnswerCategory(name string) (AnswerCategory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range answerCategoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAnswerCategory, name)
}

// UserAnswers holds the questionnaire response: selected tags per category
// plus an optional free-text override per category.
type UserAnswers struct {
	Tags   map[AnswerCategory][]string
	Custom map[AnswerCategory]string
}

func NewUserAnswers() *UserAnswers {
	return &UserAnswers{
		Tags:   make(map[AnswerCategory][]string),
		Custom: make(map[AnswerCategory]string),
	}
}

// Select appends tags to a category.
func (a *UserAnswers) Select(category AnswerCategory, tags ...string) *UserAnswers {
	if a.Tags == nil {
		a.Tags = make(map[AnswerCategory][]string)
	}
	a.Tags[category] = append(a.Tags[category], tags...)
	return a
}

// SetCustom sets the free-text override of a category.
func (a *UserAnswers) SetCustom(category AnswerCategory, text string) *UserAnswers {
	if a.Custom == nil {
		a.Custom = make(map[AnswerCategory]string)
	}
	a.Custom[category] = text
	return a
}

// Text returns the text to embed for a category: tags joined by spaces,
// followed by the trimmed override when it is not blank. A nil receiver or an
// absent category yields "".
func (a *UserAnswers) Text(category AnswerCategory) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.Tags[category])+1)
	parts = append(parts, a.Tags[category]...)
	if custom := strings.TrimSpace(a.Custom[category]); custom != "" {
		parts = append(parts, custom)
	}
	return strings.Join(parts, " ")
}

// UnmarshalJSON accepts the questionnaire wire form:
//
//	{"academics": ["math"], "goals": [], "custom": {"goals": "become a doctor"}}
//
// Unknown keys are ignored.
func (a *UserAnswers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Tags = make(map[AnswerCategory][]string)
	a.Custom = make(map[AnswerCategory]string)

	for key, value := range raw {
		if key == "custom" {
			var custom map[string]string
			if err := json.Unmarshal(value, &custom); err != nil {
				return fmt.Errorf("custom answers: %w", err)
			}
			for name, text := range custom {
				category, err := ParseAnswerCategory(name)
				if err != nil {
					continue
				}
				a.Custom[category] = text
			}
			continue
		}

		category, err := ParseAnswerCategory(key)
		if err != nil {
			continue
		}
		var tags []string
		if err := json.Unmarshal(value, &tags); err != nil {
			return fmt.Errorf("%s answers: %w", key, err)
		}
		a.Tags[category] = tags
	}
	return nil
}

func (a *UserAnswers) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(AnswerCategories)+1)
	custom := make(map[string]string)
	for _, category := range AnswerCategories {
		tags := a.Tags[category]
		if tags == nil {
			tags = []string{}
		}
		out[category.String()] = tags
		if text, ok := a.Custom[category]; ok {
			custom[category.String()] = text
		}
	}
	out["custom"] = custom
	return json.Marshal(out)
}
