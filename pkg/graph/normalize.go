package graph

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/nodegen/backend/pkg/ai"
	"github.com/nodegen/backend/pkg/logger"
)

// Mode selects the recovery strategy of a Normalizer.
type Mode string

const (
	// ModeBaseline tries a direct parse and then the single object repair.
	ModeBaseline Mode = "baseline"
	// ModeLenient (v2) additionally strips code fences and repairs broken JSON
	// when the baseline fails. Fenced replies succeed in this mode.
	ModeLenient Mode = "lenient"
)

// ParseMode maps a config value onto a Mode. Unknown values fall back to baseline.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeLenient), "v2":
		return ModeLenient
	default:
		return ModeBaseline
	}
}

// Normalizer turns untrusted model text into an Outcome. The zero value is the
// baseline normalizer. It holds no state and is safe for concurrent use.
type Normalizer struct {
	Mode   Mode
	Strict bool
}

// Normalize runs the baseline normalizer over raw.
func Normalize(raw string) Outcome {
	return Normalizer{}.Normalize(raw)
}

// Normalize never panics and never returns an Outcome with Err set.
//
//  1. raw is decoded as any JSON value other than an object and returned as is.
//  2. Otherwise, if the trimmed text is a bare object, it is decoded wrapped in
//     brackets and returned as a one element array.
//  3. Otherwise the outcome is a failure carrying FailureMessage.
func (n Normalizer) Normalize(raw string) Outcome {
	doc, ok := recoverDocument(raw)
	if !ok && n.Mode == ModeLenient {
		if repaired, err := repair(raw); err == nil {
			doc, ok = recoverDocument(repaired)
		}
	}
	if !ok {
		return failure(raw, nil)
	}

	if n.Strict {
		if violations := Validate(doc); len(violations) > 0 {
			return failure(raw, violations)
		}
	}
	return Outcome{Document: doc}
}

func recoverDocument(raw string) (Document, bool) {
	if doc, ok := decode(raw); ok {
		// a top level object is a single node and gets wrapped below
		if _, isObject := doc.(map[string]any); !isObject {
			return doc, true
		}
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return decode("[" + trimmed + "]")
	}
	return nil, false
}

// decode accepts exactly one JSON value surrounded by optional whitespace.
func decode(text string) (Document, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return doc, true
}

func repair(raw string) (repaired string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("JSON repair panicked", "panic", r)
			repaired, err = "", ErrInvalidSchema
		}
	}()
	return ai.RepairJSON(raw)
}

func failure(raw string, violations []Violation) Outcome {
	if len(violations) > 0 {
		logger.Warn("Model reply rejected by strict validation",
			"violations", len(violations),
			"first", violations[0].String(),
			"raw", raw,
		)
	} else {
		logger.Warn("Model reply is not valid JSON", "raw", raw)
	}
	return Outcome{Failure: &NormalizationFailure{
		Message:    FailureMessage,
		Raw:        raw,
		Violations: violations,
	}}
}
