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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediaglot/mediaglot/internal/examples"
)

var examplesData string

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Browse the bundled example results",
	Long: `Browse a curated dataset of previously translated files. The dataset is
read-only and needs no API keys, so it is a quick way to see what the
pipeline produces before configuring providers.`,
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories, providers and files in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := examples.Load(examplesData)
		if err != nil {
			return err
		}

		for _, category := range []string{examples.CategoryImages, examples.CategoryAudios} {
			fmt.Printf("%s:\n", category)
			fmt.Printf("  providers: %v\n", ds.Providers(category))
			for _, f := range ds.Files(category) {
				fmt.Printf("  - %s\n", f)
			}
		}
		return nil
	},
}

var examplesShowCmd = &cobra.Command{
	Use:   "show <category> <file>",
	Short: "Show every provider's result for one example file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := examples.Load(examplesData)
		if err != nil {
			return err
		}

		category, fileName := args[0], args[1]
		found := false
		for _, p := range ds.Providers(category) {
			entry, ok := ds.Lookup(category, p, fileName)
			if !ok {
				continue
			}
			found = true
			fmt.Printf("[%s]\n", p)
			fmt.Printf("  Original:    %s\n", entry.SourceText)
			fmt.Printf("  Translation: %s\n", entry.TranslatedText)
			fmt.Printf("  QE score:    %.4f\n", entry.Score)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No example %q in category %q\n", fileName, category)
			return fmt.Errorf("example not found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.AddCommand(examplesListCmd)
	examplesCmd.AddCommand(examplesShowCmd)

	examplesCmd.PersistentFlags().StringVar(&examplesData, "data", "files/results.json", "Path to the example dataset")
}
