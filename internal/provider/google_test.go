package provider

import (
	"context"
	"os"
	"testing"

	vision "google.golang.org/api/vision/v1"
)

func word(symbols ...string) *vision.Word {
	w := &vision.Word{}
	for _, s := range symbols {
		w.Symbols = append(w.Symbols, &vision.Symbol{Text: s})
	}
	return w
}

func TestConcatText_NoSeparators(t *testing.T) {
	// Two words on one line: the output must join them with nothing in
	// between, spaces included.
	ann := &vision.TextAnnotation{
		Pages: []*vision.Page{{
			Blocks: []*vision.Block{{
				Paragraphs: []*vision.Paragraph{{
					Words: []*vision.Word{
						word("H", "o", "l", "a"),
						word("m", "u", "n", "d", "o"),
					},
				}},
			}},
		}},
	}

	if got := concatText(ann); got != "Holamundo" {
		t.Errorf("expected 'Holamundo', got %q", got)
	}
}

func TestConcatText_SingleWord(t *testing.T) {
	ann := &vision.TextAnnotation{
		Pages: []*vision.Page{{
			Blocks: []*vision.Block{{
				Paragraphs: []*vision.Paragraph{{
					Words: []*vision.Word{word("H", "o", "l", "a")},
				}},
			}},
		}},
	}

	if got := concatText(ann); got != "Hola" {
		t.Errorf("expected 'Hola', got %q", got)
	}
}

func TestConcatText_MultipleBlocks(t *testing.T) {
	ann := &vision.TextAnnotation{
		Pages: []*vision.Page{{
			Blocks: []*vision.Block{
				{Paragraphs: []*vision.Paragraph{{Words: []*vision.Word{word("a", "b")}}}},
				{Paragraphs: []*vision.Paragraph{{Words: []*vision.Word{word("c", "d")}}}},
			},
		}},
	}

	if got := concatText(ann); got != "abcd" {
		t.Errorf("expected 'abcd', got %q", got)
	}
}

func TestConcatText_Nil(t *testing.T) {
	if got := concatText(nil); got != "" {
		t.Errorf("expected empty string for nil annotation, got %q", got)
	}
}

func TestGoogleTranslator_Name(t *testing.T) {
	if got := NewGoogleTranslator("", "").Name(); got != "google" {
		t.Errorf("expected 'google', got %q", got)
	}
}

func TestGoogleTranslator_Integration(t *testing.T) {
	credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	apiKey := os.Getenv("GOOGLE_API_KEY")
	imagePath := os.Getenv("MEDIAGLOT_TEST_IMAGE")
	if (credentials == "" && apiKey == "") || imagePath == "" {
		t.Skip("Skipping integration test: Google credentials or MEDIAGLOT_TEST_IMAGE not set")
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		t.Fatalf("failed to read test image: %v", err)
	}

	tr := NewGoogleTranslator(credentials, apiKey)
	source, translated, err := tr.ExtractAndTranslate(context.Background(), image, "es", "en")
	if err != nil {
		t.Fatalf("ExtractAndTranslate failed: %v", err)
	}
	if source == "" {
		t.Error("expected non-empty extracted text")
	}
	if translated == "" {
		t.Error("expected non-empty translation")
	}
	t.Logf("extracted %q, translated %q", source, translated)
}
