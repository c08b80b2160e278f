// Command tongrams-query looks up n-gram counts or probabilities against
// a trie either opened from a file written by tongrams-build (--model) or
// built in-memory from source files, per spec.md §4.7.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/internal/buildsource"
	"github.com/tongrams-go/tongrams/trie"
)

func main() {
	var (
		order          int
		remappingOrder int
		arpaPath       string
		unkProb        float32
		probBits       uint
		modelPath      string
		probModel      bool
	)

	root := &cobra.Command{
		Use:           "tongrams-query <source-dir-or---model> <gram>...",
		Short:         "Look up n-gram counts or scores in a persisted or freshly built trie",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath != "" {
				data, err := os.ReadFile(modelPath)
				if err != nil {
					return err
				}
				grams := args
				if probModel {
					model, err := trie.OpenProbModel(data)
					if err != nil {
						return fmt.Errorf("opening %s: %w", modelPath, err)
					}
					state := trie.NewState(model.Order)
					for _, sentence := range grams {
						state.Init()
						for _, word := range trie.TokenizeSentence(sentence) {
							score := model.Score(state, word)
							fmt.Printf("%s\t%g\n", word, score)
						}
					}
					return nil
				}
				model, err := trie.OpenCountModel(data)
				if err != nil {
					return fmt.Errorf("opening %s: %w", modelPath, err)
				}
				for _, gram := range grams {
					count, err := model.Lookup(gram)
					if err != nil {
						fmt.Printf("%s\tnot-found\n", gram)
						continue
					}
					fmt.Printf("%s\t%d\n", gram, count)
				}
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("need a source directory and at least one gram (or --model)")
			}
			dir, grams := args[0], args[1:]

			if arpaPath != "" {
				cfg := &config.BuildConfig{
					Order:                   order,
					RemappingOrder:          remappingOrder,
					DataStructure:           config.DataStructurePEF,
					ValueType:               config.ValueTypeProb,
					RanksType:               config.RanksTypePrefixSummedPEF,
					HashKeyBytes:            4,
					UnkProb:                 unkProb,
					ProbQuantizationBits:    probBits,
					BackoffQuantizationBits: probBits,
				}
				model, err := buildsource.ProbModelFromArpa(cfg, arpaPath)
				if err != nil {
					return err
				}
				state := trie.NewState(model.Order)
				for _, sentence := range grams {
					state.Init()
					for _, word := range trie.TokenizeSentence(sentence) {
						score := model.Score(state, word)
						fmt.Printf("%s\t%g\n", word, score)
					}
				}
				return nil
			}

			cfg := &config.BuildConfig{
				Order:          order,
				RemappingOrder: remappingOrder,
				DataStructure:  config.DataStructurePEF,
				RanksType:      config.RanksTypeIndexedCodewords,
				HashKeyBytes:   4,
			}
			model, err := buildsource.CountModelFromDir(cfg, dir)
			if err != nil {
				return err
			}
			for _, gram := range grams {
				count, err := model.Lookup(gram)
				if err != nil {
					fmt.Printf("%s\tnot-found\n", gram)
					continue
				}
				fmt.Printf("%s\t%d\n", gram, count)
			}
			return nil
		},
	}

	root.Flags().IntVar(&order, "order", 3, "maximum n-gram order")
	root.Flags().IntVar(&remappingOrder, "remapping-order", 0, "context remapping strength; only 0 is accepted, higher values are rejected by config validation")
	root.Flags().StringVar(&arpaPath, "arpa", "", "query a probability model built from this ARPA file instead of a count directory")
	root.Flags().Float32Var(&unkProb, "unk-prob", -100, "log-probability assigned to out-of-vocabulary words")
	root.Flags().UintVar(&probBits, "prob-bits", 8, "quantization width in bits for probability/backoff tables")
	root.Flags().StringVar(&modelPath, "model", "", "open a trie previously written by tongrams-build instead of rebuilding from source")
	root.Flags().BoolVar(&probModel, "prob-model", false, "the --model file is a probability/back-off trie (score) rather than a count trie (lookup)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tongrams-query:", err)
		os.Exit(1)
	}
}
