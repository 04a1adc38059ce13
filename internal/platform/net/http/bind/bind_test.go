package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "scribe/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

type searchBody struct {
	Q      string `json:"q" validate:"max=8"`
	Strict bool   `json:"strict"`
	Limit  int    `json:"limit" validate:"omitempty,min=1"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		want  searchBody
		code  perr.ErrorCode
		field string
	}{
		{name: "ok", body: `{"q":"is the","strict":true}`, want: searchBody{Q: "is the", Strict: true}},
		{name: "empty object", body: `{}`},
		{name: "empty body", body: ``, code: perr.ErrorCodeJSON},
		{name: "malformed", body: `{"q":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"query":"cat"}`, code: perr.ErrorCodeJSON},
		{name: "trailing object", body: `{"q":"a"} {"q":"b"}`, code: perr.ErrorCodeJSON},
		{name: "too long", body: `{"q":"abcdefghij"}`, code: perr.ErrorCodeValidation, field: "q"},
		{name: "below min", body: `{"limit":-1}`, code: perr.ErrorCodeValidation, field: "limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseJSON[searchBody](post(tc.body))
			if tc.code != perr.ErrorCodeUnknown {
				e, ok := perr.As(err)
				if !ok || e.Code() != tc.code {
					t.Fatalf("expected %v, got %v", tc.code, err)
				}
				if e.Field() != tc.field {
					t.Fatalf("field = %q, want %q", e.Field(), tc.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestParseJSON_BodyCapped(t *testing.T) {
	big := `{"q":"` + strings.Repeat("a", MaxBody) + `"}`
	if _, err := ParseJSON[searchBody](post(big)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for oversized body, got %v", err)
	}
}

func TestValidationMessages(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"q":"abcdefghij"}`, "q must be at most 8"},
		{`{"limit":-3}`, "limit must be at least 1"},
	}
	for _, tc := range cases {
		_, err := ParseJSON[searchBody](post(tc.body))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("body %s: got %v, want message %q", tc.body, err, tc.want)
		}
	}
}

func TestTagNames(t *testing.T) {
	type mixed struct {
		Tagged string `json:"video_id,omitempty" validate:"required"`
		Dashed string `json:"-" validate:"required"`
		Plain  string `validate:"required"`
	}
	var verrs validator.ValidationErrors
	if !errors.As(Get().Validator.Struct(mixed{}), &verrs) {
		t.Fatal("expected validation errors")
	}
	var seen []string
	for _, fe := range verrs {
		seen = append(seen, fe.Field())
	}
	want := []string{"video_id", "Dashed", "Plain"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("fields = %v, want %v", seen, want)
	}
}

func TestValidationFieldAndMessage_Plain(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
	if f, m := ValidationFieldAndMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("plain: %q %q", f, m)
	}
}
