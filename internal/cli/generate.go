package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pckp/instance"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		n      int
		seed   int64
		p      float64
		output string
	)

	cmd := &cobra.Command{
		Use:       "generate <tree|dag>",
		Short:     "Write a random instance",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"tree", "dag"},
		Example: `  pckp generate tree --n 5000 --seed 7 -o tree.yaml
  pckp generate dag --n 60 --p 0.05 -o dag.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("--n must be non-negative, got %d", n)
			}
			var in *instance.Instance
			switch args[0] {
			case "tree":
				in = instance.RandomTree(n, seed)
			case "dag":
				if p < 0 || p > 1 {
					return fmt.Errorf("--p must be in [0,1], got %g", p)
				}
				in = instance.RandomDAG(n, p, seed)
			default:
				return fmt.Errorf("unknown shape %q (want tree or dag)", args[0])
			}
			if err := instance.Save(output, in); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			c.Logger.Debug("generated", "items", in.Len(), "edges", len(in.Edges))

			printSuccess(c.out, "Generated %s (%d items, %d edges)", in.Name, in.Len(), len(in.Edges))
			printFile(c.out, output)

			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "number of items")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&p, "p", 0.05, "edge probability (dag only)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
