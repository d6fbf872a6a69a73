/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mediaglot/mediaglot/internal"
	"github.com/mediaglot/mediaglot/internal/logging"
	"github.com/mediaglot/mediaglot/internal/pipeline"
	"github.com/mediaglot/mediaglot/internal/provider"
	"github.com/mediaglot/mediaglot/internal/scorer"
	"github.com/mediaglot/mediaglot/internal/store"
)

var (
	sourceLang  string
	targetLang  string
	credentials string
	googleKey   string
	openaiKey   string
	scorerURL   string
	scorerModel string
	noCache     bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <file>...",
	Short: "Run image or audio files through the translation pipeline",
	Long: `Run one or more image or audio files through the pipeline.

Images go through two independent provider paths (Google Vision + Google
Translate, and a multimodal OpenAI call + chat translation) so the results
can be compared side by side. Audio is converted to mp3, transcribed with
Whisper, and translated once.

Every translation is scored by a COMET-QE inference server; start one and
point --scorer-url at it. Language codes are two-letter ISO 639-1 strings
and are not validated locally: a bad code surfaces as a provider error.
Use "auto" as the source language to detect it from the extracted text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if targetLang == "" {
			return fmt.Errorf("target language is required")
		}

		logger, err := logging.New(logLevel)
		if err != nil {
			return err
		}

		ctx := context.Background()

		google := provider.NewGoogleTranslator(
			fromFlagOrConfig(credentials, "google.credentials"),
			fromFlagOrConfig(googleKey, "google.api_key"),
		)
		openai := provider.NewOpenAITranslator(fromFlagOrConfig(openaiKey, "openai.api_key"))
		qe := scorer.NewCometScorer(scorerModel, scorerURL)

		results := store.New()
		pl, err := pipeline.New(pipeline.Config{
			Google:      google,
			OpenAI:      openai,
			Audio:       openai,
			Scorer:      qe,
			Store:       results,
			Logger:      logger,
			DisableMemo: noCache,
		})
		if err != nil {
			return err
		}

		failed := 0
		for _, arg := range args {
			rec, err := pl.Run(ctx, pipeline.File{Name: filepath.Base(arg), Path: arg}, sourceLang, targetLang)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", arg, err)
				failed++
				continue
			}
			printRecord(os.Stdout, rec)
		}

		fmt.Printf("Processed %d/%d files\n", len(args)-failed, len(args))
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func printRecord(w io.Writer, rec *internal.Record) {
	fmt.Fprintf(w, "=== %s (%s)\n", rec.FileName, rec.Kind)
	for _, o := range rec.Outcomes {
		fmt.Fprintf(w, "[%s]\n", o.Provider)
		fmt.Fprintf(w, "  Original:    %s\n", o.SourceText)
		fmt.Fprintf(w, "  Translation: %s\n", o.TranslatedText)
		fmt.Fprintf(w, "  QE score:    %.4f\n", o.QualityScore)
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")
	translateCmd.Flags().StringVar(&googleKey, "google-key", "", "Google API key for the Translate API")
	translateCmd.Flags().StringVar(&openaiKey, "openai-key", "", "OpenAI API key")
	translateCmd.Flags().StringVar(&scorerURL, "scorer-url", "http://localhost:8000", "COMET-QE inference server URL")
	translateCmd.Flags().StringVar(&scorerModel, "scorer-model", "", "QE model name (default "+scorer.DefaultModel+")")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not replay memoized results for repeated inputs")
}
