// Command tongrams-build builds a succinct n-gram trie from count source
// files, prints its size breakdown and, when --output is set, writes it
// to disk, per spec.md §6/§7.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tongrams-go/tongrams/config"
	"github.com/tongrams-go/tongrams/internal/buildsource"
)

func main() {
	var (
		order          int
		dataStructure  string
		remappingOrder int
		ranksType      string
		hashKeyBytes   uint
		output         string
	)

	root := &cobra.Command{
		Use:           "tongrams-build <source-dir>",
		Short:         "Build a succinct n-gram count trie from <k>-grams.sorted.gz files",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.BuildConfig{
				Order:          order,
				RemappingOrder: remappingOrder,
				HashKeyBytes:   hashKeyBytes,
			}
			switch dataStructure {
			case "ef":
				cfg.DataStructure = config.DataStructureEF
			case "fast_ef":
				cfg.DataStructure = config.DataStructureFastEF
			case "pef":
				cfg.DataStructure = config.DataStructurePEF
			default:
				return fmt.Errorf("unknown --data-structure %q", dataStructure)
			}
			switch ranksType {
			case "ic":
				cfg.RanksType = config.RanksTypeIndexedCodewords
			case "psef":
				cfg.RanksType = config.RanksTypePrefixSummedEF
			case "pspef":
				cfg.RanksType = config.RanksTypePrefixSummedPEF
			default:
				return fmt.Errorf("unknown --ranks-type %q", ranksType)
			}

			model, err := buildsource.CountModelFromDir(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("built count trie: order=%d vocab=%d\n", model.Order, model.Vocab.Size())
			stats := model.Stats()
			fmt.Printf("size: vocab=%dB grams=%dB pointers=%dB ranks=%dB total=%dB\n",
				stats.VocabularyBytes, stats.GramsBytes, stats.PointersBytes, stats.RanksBytes, stats.TotalBytes)
			if output == "" {
				return nil
			}
			if err := os.WriteFile(output, model.Save(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}

	root.Flags().IntVar(&order, "order", 3, "maximum n-gram order")
	root.Flags().StringVar(&dataStructure, "data-structure", "pef", "grams_k codec: ef, fast_ef, pef")
	root.Flags().IntVar(&remappingOrder, "remapping-order", 0, "context remapping strength; only 0 is accepted, higher values are rejected by config validation")
	root.Flags().StringVar(&ranksType, "ranks-type", "ic", "count-rank codec: ic, psef, pspef")
	root.Flags().UintVar(&hashKeyBytes, "hash-key-bytes", 4, "MPH verification-hash width in bytes (4 or 8)")
	root.Flags().StringVar(&output, "output", "", "write the built trie as a single binary file to this path")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tongrams-build:", err)
		os.Exit(1)
	}
}
