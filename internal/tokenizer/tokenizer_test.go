package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct {
	err error
}

func (testCounter) Name() string { return "stub" }

func (counter testCounter) CountString(input string) (int, error) {
	if counter.err != nil {
		return 0, counter.err
	}
	return len([]rune(input)), nil
}

func TestCountDocument(t *testing.T) {
	document := "```plaintext\nproject\n├── main.go\n```\n"
	tokens, err := CountDocument(testCounter{}, document)
	if err != nil {
		t.Fatalf("CountDocument error: %v", err)
	}
	if tokens != len([]rune(document)) {
		t.Fatalf("expected %d tokens, got %d", len([]rune(document)), tokens)
	}
}

func TestCountDocumentPropagatesErrors(t *testing.T) {
	counterError := errors.New("encoder unavailable")
	if _, err := CountDocument(testCounter{err: counterError}, "x"); !errors.Is(err, counterError) {
		t.Fatalf("expected counter error, got %v", err)
	}
	if _, err := CountDocument(nil, "x"); err == nil {
		t.Fatalf("expected error for nil counter")
	}
}
