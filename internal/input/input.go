// Package input turns a raw generate-leads body into a sanitized,
// validated domain.LeadRequest.
package input

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
)

const (
	MaxFieldLen       = 200
	DefaultMaxResults = 10
	MinMaxResults     = 1
	MaxMaxResults     = 50
)

const (
	MsgRequired        = "Industry and location are required."
	MsgTooShort        = "Industry and location must be at least 2 characters."
	MsgInvalidIndustry = "Please enter a valid industry (e.g., Software Development, Healthcare, Marketing)."
	MsgInvalidLocation = "Please enter a valid location (e.g., New York, California, United States)."
	MsgInvalidBody     = "Request body must be a JSON object."
)

// Error is a client-facing validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

type payload struct {
	Industry   any `json:"industry"`
	Location   any `json:"location"`
	MaxResults any `json:"maxResults"`
}

type leadForm struct {
	Industry string `validate:"required,min=2,industry"`
	Location string `validate:"required,min=2,location"`
}

// Validator holds the go-playground validator with the industry and
// location rules registered. The word tables behind those rules come from
// config and can be swapped while requests are in flight.
type Validator struct {
	v      *validator.Validate
	tables atomic.Pointer[wordTables]
}

type wordTables struct {
	placeholders map[string]bool
	keywords     []string
}

func NewValidator(cfg config.InputConfig) *Validator {
	val := &Validator{v: validator.New()}
	val.SetTables(cfg)
	// Registration only fails on an empty tag or nil func.
	_ = val.v.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
		return val.ValidIndustry(fl.Field().String())
	})
	_ = val.v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return val.ValidLocation(fl.Field().String())
	})
	return val
}

// SetTables replaces the placeholder words and industry keywords.
func (val *Validator) SetTables(cfg config.InputConfig) {
	t := &wordTables{placeholders: make(map[string]bool, len(cfg.PlaceholderWords))}
	for _, w := range cfg.PlaceholderWords {
		t.placeholders[strings.ToLower(strings.TrimSpace(w))] = true
	}
	for _, k := range cfg.IndustryKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			t.keywords = append(t.keywords, k)
		}
	}
	val.tables.Store(t)
}

// Parse decodes and validates a request body. Every failure is an *Error.
func (val *Validator) Parse(r io.Reader) (domain.LeadRequest, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return domain.LeadRequest{}, &Error{Message: MsgInvalidBody}
	}
	req := domain.LeadRequest{
		Industry:   Sanitize(asString(p.Industry)),
		Location:   Sanitize(asString(p.Location)),
		MaxResults: ClampMaxResults(p.MaxResults),
	}
	if err := val.Validate(req); err != nil {
		return domain.LeadRequest{}, err
	}
	return req, nil
}

// Validate checks an already sanitized request. Failures are reported in a
// fixed order: missing, too short, bad industry, bad location.
func (val *Validator) Validate(req domain.LeadRequest) error {
	err := val.v.Struct(leadForm{Industry: req.Industry, Location: req.Location})
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return &Error{Message: MsgRequired}
	}
	failed := map[string]bool{}
	for _, fe := range fes {
		failed[fe.Tag()] = true
	}
	switch {
	case failed["required"]:
		return &Error{Message: MsgRequired}
	case failed["min"]:
		return &Error{Message: MsgTooShort}
	case failed["industry"]:
		return &Error{Message: MsgInvalidIndustry}
	default:
		return &Error{Message: MsgInvalidLocation}
	}
}

var unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// Sanitize trims, strips <>"'& and caps the length.
func Sanitize(s string) string {
	s = strings.TrimSpace(unsafeChars.Replace(strings.TrimSpace(s)))
	if r := []rune(s); len(r) > MaxFieldLen {
		s = strings.TrimSpace(string(r[:MaxFieldLen]))
	}
	return s
}

// ClampMaxResults maps any JSON value onto [1,50]; missing, zero and
// non-numeric values give the default.
func ClampMaxResults(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return DefaultMaxResults
		}
		f = n
	default:
		return DefaultMaxResults
	}
	if f == 0 || math.IsNaN(f) {
		return DefaultMaxResults
	}
	f = math.Max(MinMaxResults, math.Min(f, MaxMaxResults))
	return int(f)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

var (
	digitsOnlyRe = regexp.MustCompile(`^[0-9]+$`)
	noLettersRe  = regexp.MustCompile(`^[^a-zA-Z]+$`)
	twoLettersRe = regexp.MustCompile(`[a-zA-Z]{2,}`)

	industryFormatRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s&-]*[a-zA-Z]$`)
	locationFormatRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s,.-]*[a-zA-Z.]?$`)
	lettersOnlyRe    = regexp.MustCompile(`^[a-zA-Z]{2,}$`)
)

// plausible rejects digits-only, letterless, repeated-character spam and
// placeholder words, and needs two consecutive letters.
func (t *wordTables) plausible(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if digitsOnlyRe.MatchString(s) || noLettersRe.MatchString(s) || t.placeholders[s] {
		return false
	}
	if hasRun(s, 5) {
		return false
	}
	return twoLettersRe.MatchString(s)
}

// hasRun reports whether any character repeats n or more times in a row.
func hasRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}

// ValidIndustry accepts plausible text that names a known industry or is
// shaped like one ("Home Services").
func (val *Validator) ValidIndustry(s string) bool {
	tables := val.tables.Load()
	if !tables.plausible(s) {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(s))
	for _, k := range tables.keywords {
		if strings.Contains(t, k) || strings.Contains(k, t) {
			return true
		}
	}
	return industryFormatRe.MatchString(t) || lettersOnlyRe.MatchString(t)
}

// ValidLocation accepts plausible text made of letters, spaces, commas,
// periods and hyphens.
func (val *Validator) ValidLocation(s string) bool {
	if !val.tables.Load().plausible(s) {
		return false
	}
	t := strings.TrimSpace(s)
	return locationFormatRe.MatchString(t) || lettersOnlyRe.MatchString(t)
}
