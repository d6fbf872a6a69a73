package examples

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fixture = `{
  "images": {
    "google": {
      "menu.jpg": {"texto_original": "MenúDelDía", "texto_traducido": "Menu of the day", "puntuacion": 0.41},
      "sign.png": {"texto_original": "Salida", "texto_traducido": "Exit", "puntuacion": 0.37}
    },
    "openai": {
      "menu.jpg": {"texto_original": "Menú del día", "texto_traducido": "Daily menu", "puntuacion": 0.52}
    }
  },
  "audios": {
    "openai": {
      "saludo.mp3": {"texto_original": "Buenos días", "texto_traducido": "Good morning", "puntuacion": -0.12}
    }
  }
}`

func loadFixture(t *testing.T) *Dataset {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return ds
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid dataset file")
	}
}

func TestLookup(t *testing.T) {
	ds := loadFixture(t)

	entry, ok := ds.Lookup(CategoryImages, "google", "menu.jpg")
	if !ok {
		t.Fatal("expected hit for images/google/menu.jpg")
	}
	if entry.SourceText != "MenúDelDía" || entry.TranslatedText != "Menu of the day" || entry.Score != 0.41 {
		t.Errorf("unexpected entry: %+v", entry)
	}

	// Negative scores are legitimate QE output.
	entry, ok = ds.Lookup(CategoryAudios, "openai", "saludo.mp3")
	if !ok {
		t.Fatal("expected hit for audios/openai/saludo.mp3")
	}
	if entry.Score != -0.12 {
		t.Errorf("expected score -0.12, got %v", entry.Score)
	}

	if _, ok := ds.Lookup(CategoryImages, "google", "missing.jpg"); ok {
		t.Error("expected miss for unknown file")
	}
	if _, ok := ds.Lookup("videos", "google", "menu.jpg"); ok {
		t.Error("expected miss for unknown category")
	}
}

func TestProviders(t *testing.T) {
	ds := loadFixture(t)

	if got := ds.Providers(CategoryImages); !reflect.DeepEqual(got, []string{"google", "openai"}) {
		t.Errorf("unexpected image providers: %v", got)
	}
	if got := ds.Providers(CategoryAudios); !reflect.DeepEqual(got, []string{"openai"}) {
		t.Errorf("unexpected audio providers: %v", got)
	}
}

func TestFiles(t *testing.T) {
	ds := loadFixture(t)

	if got := ds.Files(CategoryImages); !reflect.DeepEqual(got, []string{"menu.jpg", "sign.png"}) {
		t.Errorf("unexpected image files: %v", got)
	}
}
