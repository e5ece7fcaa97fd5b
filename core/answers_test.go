package core

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestAnswerCategory_String(t *testing.T) {
	for _, c := range AnswerCategories {
		parsed, err := ParseAnswerCategory(c.String())
		if err != nil {
			t.Fatalf("ParseAnswerCategory(%q) error = %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseAnswerCategory(%q) = %v, want %v", c.String(), parsed, c)
		}
	}

	if _, err := ParseAnswerCategory("hobbies"); !errors.Is(err, ErrUnknownAnswerCategory) {
		t.Errorf("ParseAnswerCategory(hobbies) error = %v, want ErrUnknownAnswerCategory", err)
	}
	if got, _ := ParseAnswerCategory(" Goals "); got != CategoryGoals {
		t.Errorf("ParseAnswerCategory is not case-insensitive: got %v", got)
	}
}

func TestUserAnswers_Text(t *testing.T) {
	tests := []struct {
		name    string
		answers *UserAnswers
		want    string
	}{
		{
			name:    "nil answers",
			answers: nil,
			want:    "",
		},
		{
			name:    "absent category",
			answers: NewUserAnswers(),
			want:    "",
		},
		{
			name:    "tags joined by space",
			answers: NewUserAnswers().Select(CategoryGoals, "doctor", "research"),
			want:    "doctor research",
		},
		{
			name:    "override appended",
			answers: NewUserAnswers().Select(CategoryGoals, "doctor").SetCustom(CategoryGoals, "help people"),
			want:    "doctor help people",
		},
		{
			name:    "override only",
			answers: NewUserAnswers().SetCustom(CategoryGoals, "help people"),
			want:    "help people",
		},
		{
			name:    "override trimmed",
			answers: NewUserAnswers().Select(CategoryGoals, "doctor").SetCustom(CategoryGoals, "  help people \n"),
			want:    "doctor help people",
		},
		{
			name:    "blank override ignored",
			answers: NewUserAnswers().Select(CategoryGoals, "doctor").SetCustom(CategoryGoals, "   "),
			want:    "doctor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.answers.Text(CategoryGoals); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAnswers_UnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"academics": ["math", "biology"],
		"fields": [],
		"hobbies": ["chess"],
		"custom": {"goals": "become a doctor", "unknown": "x"}
	}`)

	var answers UserAnswers
	if err := json.Unmarshal(data, &answers); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := answers.Text(CategoryAcademics); got != "math biology" {
		t.Errorf("academics = %q", got)
	}
	if got := answers.Text(CategoryFields); got != "" {
		t.Errorf("fields = %q, want empty", got)
	}
	if got := answers.Text(CategoryGoals); got != "become a doctor" {
		t.Errorf("goals = %q", got)
	}
	if len(answers.Tags) != 2 {
		t.Errorf("unknown keys were not ignored: %v", answers.Tags)
	}
}

func TestUserAnswers_UnmarshalJSON_BadTags(t *testing.T) {
	var answers UserAnswers
	if err := json.Unmarshal([]byte(`{"academics": "math"}`), &answers); err == nil {
		t.Errorf("Unmarshal() expected error for non-array tags")
	}
}

func TestUserAnswers_MarshalJSON(t *testing.T) {
	answers := NewUserAnswers().Select(CategoryFields, "health").SetCustom(CategoryGoals, "nurse")

	data, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back UserAnswers
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, c := range AnswerCategories {
		if answers.Text(c) != back.Text(c) {
			t.Errorf("%s: got %q, want %q", c, back.Text(c), answers.Text(c))
		}
	}
}
