package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pckp"
	"github.com/katalvlaran/pckp/config"
	"github.com/katalvlaran/pckp/instance"
	"github.com/katalvlaran/pckp/metrics"
)

func (c *CLI) benchCommand() *cobra.Command {
	var (
		n       int
		seed    int64
		runs    int
		lpRelax bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve a batch of random trees and print solver metrics",
		Example: `  pckp bench --n 5000 --runs 5
  pckp bench --n 40 --runs 20 --lp-relax=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 || runs < 1 {
				return fmt.Errorf("need --n >= 0 and --runs >= 1")
			}
			cfg := config.Default()
			reg := prometheus.NewRegistry()
			mc := cfg.MetricsConfig()
			mc.Registry = reg
			rec, err := metrics.NewRecorder(mc)
			if err != nil {
				return err
			}

			ph := c.startPhase("bench", "runs", runs, "n", n)
			counts := map[pckp.Status]int{}
			for k := 0; k < runs; k++ {
				in := instance.RandomTree(n, instance.DeriveSeed(seed, uint64(k)))
				res, err := pckp.Solve(cmd.Context(), in.Profit, in.Weight, in.EdgeList(), in.MaxWeight,
					pckp.WithLPRelax(lpRelax),
					pckp.WithWorkers(workers),
					pckp.WithRecorder(rec),
					pckp.WithLogger(c.Logger),
				)
				if err != nil {
					return fmt.Errorf("run %d: %w", k, err)
				}
				counts[res.Status]++
				c.Logger.Debug("run", "k", k, "status", res.Status, "objective", res.Objective, "elapsed", res.Elapsed)
			}
			ph.finish()

			families, err := reg.Gather()
			if err != nil {
				return err
			}
			printTitle(c.out, fmt.Sprintf("bench · %d runs · n=%d", runs, n))
			for _, s := range []pckp.Status{pckp.Optimal, pckp.Infeasible, pckp.SuboptimalLimitReached} {
				if counts[s] > 0 {
					printKeyValue(c.out, s.String(), number("%d", counts[s]))
				}
			}
			printFamilies(c, families)

			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 1000, "items per instance")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base random seed")
	cmd.Flags().IntVar(&runs, "runs", 5, "number of instances")
	cmd.Flags().BoolVar(&lpRelax, "lp-relax", true, "solve the linear relaxation only")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent branch-and-bound workers")

	return cmd
}

// printFamilies prints one line per counter series and a count/mean line
// per histogram.
func printFamilies(c *CLI, families []*dto.MetricFamily) {
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := labelString(m.GetLabel()); labels != "" {
				name += "{" + labels + "}"
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintln(c.out, styleDim.Render(name)+" "+number("%g", m.GetCounter().GetValue()))
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				mean := 0.0
				if h.GetSampleCount() > 0 {
					mean = h.GetSampleSum() / float64(h.GetSampleCount())
				}
				fmt.Fprintln(c.out, styleDim.Render(name)+" "+number("count=%d mean=%.4g", h.GetSampleCount(), mean))
			}
		}
	}
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, len(pairs))
	for i, lp := range pairs {
		parts[i] = lp.GetName() + "=" + lp.GetValue()
	}

	return strings.Join(parts, ",")
}
