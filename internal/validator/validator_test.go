package validator

import "testing"

func TestIsValidParentMobile(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   bool
	}{
		{name: "plain national number", mobile: "9876543210", want: true},
		{name: "with country code", mobile: "+919876543210", want: true},
		{name: "minimum length", mobile: "1234567", want: true},
		{name: "maximum length", mobile: "123456789012345", want: true},
		{name: "too short", mobile: "123456", want: false},
		{name: "too long", mobile: "1234567890123456", want: false},
		{name: "with dashes", mobile: "987-654-3210", want: false},
		{name: "plus in middle", mobile: "98+76543210", want: false},
		{name: "empty", mobile: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidParentMobile(tt.mobile); got != tt.want {
				t.Errorf("IsValidParentMobile(%q) = %v, want %v", tt.mobile, got, tt.want)
			}
		})
	}
}

func TestValidateCreateReportRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       CreateReportRequest
		wantCount int
	}{
		{
			name: "valid",
			req: CreateReportRequest{
				Title:       "Broken railing",
				Description: "Second floor railing is loose",
				Location:    "Building B",
				Category:    "Infrastructure",
				Priority:    "High",
			},
			wantCount: 0,
		},
		{
			name: "priority optional",
			req: CreateReportRequest{
				Title:       "Broken railing",
				Description: "Second floor railing is loose",
				Location:    "Building B",
				Category:    "Safety",
			},
			wantCount: 0,
		},
		{
			name: "bad category and priority",
			req: CreateReportRequest{
				Title:       "Broken railing",
				Description: "desc",
				Location:    "Building B",
				Category:    "Gossip",
				Priority:    "Urgent",
			},
			wantCount: 2,
		},
		{
			name:      "everything missing aggregates",
			req:       CreateReportRequest{},
			wantCount: 4, // title, description, location, category
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if len(errs) != tt.wantCount {
				t.Errorf("Validate() returned %d errors (%v), want %d", len(errs), errs.Messages(), tt.wantCount)
			}
		})
	}
}

func TestValidateCreateModuleRequest(t *testing.T) {
	v := New()

	req := CreateModuleRequest{
		Title:          "Fire Safety",
		Description:    "Learn fire safety",
		Difficulty:     "expert",
		Duration:       "2 hours",
		EstimatedHours: 0,
	}
	errs := v.Validate(&req)
	if len(errs) != 2 {
		t.Fatalf("Validate() returned %d errors (%v), want 2", len(errs), errs.Messages())
	}

	req.Difficulty = "beginner"
	req.EstimatedHours = 2.5
	if errs := v.Validate(&req); len(errs) != 0 {
		t.Errorf("Validate() on fixed request = %v, want none", errs.Messages())
	}
}

func TestValidateSubmitQuizRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(&SubmitQuizRequest{}); len(errs) == 0 {
		t.Error("Validate() accepted empty answers")
	}

	ok := SubmitQuizRequest{Answers: []AnswerInput{{QuestionID: "q1", OptionID: "o1"}}}
	if errs := v.Validate(&ok); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs.Messages())
	}

	missing := SubmitQuizRequest{Answers: []AnswerInput{{QuestionID: "q1"}}}
	if errs := v.Validate(&missing); len(errs) != 1 {
		t.Errorf("Validate() on answer without option = %v, want one error", errs.Messages())
	}
}

func TestValidationErrorsMessages(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "category", Message: "Invalid category. Must be one of: Safety, Bullying, Infrastructure, Academic, Behavioral, Other"},
	}

	msgs := errs.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Messages() len = %d, want 2", len(msgs))
	}
	if msgs[0] != "title is required" {
		t.Errorf("Messages()[0] = %q", msgs[0])
	}

	if errs.Error() != "validation failed: 2 field errors" {
		t.Errorf("Error() = %q", errs.Error())
	}
	one := ValidationErrors{{Field: "title", Message: "is required"}}
	if one.Error() != "validation failed: title is required" {
		t.Errorf("single Error() = %q", one.Error())
	}
}
