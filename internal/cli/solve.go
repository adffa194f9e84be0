package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pckp"
	"github.com/katalvlaran/pckp/bnb"
	"github.com/katalvlaran/pckp/config"
	"github.com/katalvlaran/pckp/instance"
)

// solveFlags holds flag values that override the config file.
type solveFlags struct {
	configPath string
	lpRelax    bool
	timeLimit  time.Duration
	maxNodes   int
	workers    int
	gap        float64
	jsonOut    bool
}

// resultView is the --json encoding of a solve.
type resultView struct {
	Instance  string      `json:"instance,omitempty"`
	RunID     string      `json:"run_id"`
	Status    pckp.Status `json:"status"`
	Code      int         `json:"code"`
	Selection []float64   `json:"selection"`
	Rounded   []float64   `json:"rounded"`
	Objective float64     `json:"objective"`
	Weight    float64     `json:"weight"`
	Capacity  float64     `json:"capacity"`
	Bound     *float64    `json:"bound,omitempty"`
	Elapsed   string      `json:"elapsed"`
	Stats     bnb.Stats   `json:"stats"`
}

func (c *CLI) solveCommand() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve <instance>",
		Short: "Solve an instance file (.yaml, .yml or .json)",
		Example: `  # Exact optimum
  pckp solve items.yaml

  # Linear relaxation, machine-readable
  pckp solve items.yaml --lp-relax --json

  # Four workers, stop after ten seconds
  pckp solve items.yaml --workers 4 --time-limit 10s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			in, err := instance.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			if in.Convention != "" {
				conv, err := in.EdgeConvention()
				if err != nil {
					return err
				}
				opts = append(opts, pckp.WithConvention(conv))
			}
			opts = append(opts, pckp.WithLogger(c.Logger))

			ph := c.startPhase("solve", "instance", args[0], "items", in.Len())
			res, err := pckp.Solve(cmd.Context(), in.Profit, in.Weight, in.EdgeList(), in.MaxWeight, opts...)
			if err != nil {
				return fmt.Errorf("solve %s: %w", args[0], err)
			}
			ph.finish("status", res.Status, "objective", res.Objective)

			if f.jsonOut {
				return c.writeJSON(in, res)
			}
			c.printResult(in, res)

			return nil
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "TOML solver configuration")
	cmd.Flags().BoolVar(&f.lpRelax, "lp-relax", false, "return the linear relaxation optimum")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "wall time budget (0 = none)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "branch-and-bound node budget (0 = none)")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "concurrent branch-and-bound workers")
	cmd.Flags().Float64Var(&f.gap, "gap", 0, "relative optimality gap tolerance")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print the result as JSON")

	return cmd
}

// loadConfig reads --config (or defaults) and applies flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command, f *solveFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
		if v := cmd.Flags().Lookup("verbose"); v == nil || !v.Changed {
			c.SetLogLevel(cfg.LogLevel())
		}
		c.Logger.Debug("loaded config", "path", f.configPath)
	}
	flags := cmd.Flags()
	if flags.Changed("lp-relax") {
		cfg.Solver.LPRelax = f.lpRelax
	}
	if flags.Changed("time-limit") {
		cfg.Solver.TimeLimit = f.timeLimit
	}
	if flags.Changed("max-nodes") {
		cfg.Solver.MaxNodes = f.maxNodes
	}
	if flags.Changed("workers") {
		cfg.Solver.Workers = f.workers
	}
	if flags.Changed("gap") {
		cfg.Solver.GapTolerance = f.gap
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func (c *CLI) writeJSON(in *instance.Instance, res *pckp.Result) error {
	v := resultView{
		Instance:  in.Name,
		RunID:     res.RunID.String(),
		Status:    res.Status,
		Code:      int(res.Status),
		Selection: res.Selection,
		Rounded:   res.Rounded,
		Objective: res.Objective,
		Weight:    pckp.Weight(in.Weight, res.Selection),
		Capacity:  in.MaxWeight,
		Elapsed:   res.Elapsed.String(),
		Stats:     res.Stats,
	}
	if res.Status != pckp.Infeasible && !math.IsInf(res.Bound, 0) {
		b := res.Bound
		v.Bound = &b
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (c *CLI) printResult(in *instance.Instance, res *pckp.Result) {
	w := c.out
	title := "pckp"
	if in.Name != "" {
		title += " · " + in.Name
	}
	printTitle(w, title)
	printKeyValue(w, "Status", statusLine(res.Status))
	printKeyValue(w, "Objective", number("%.6g", res.Objective))
	printKeyValue(w, "Weight", number("%.6g / %.6g", pckp.Weight(in.Weight, res.Selection), in.MaxWeight))
	if res.Status == pckp.SuboptimalLimitReached && !math.IsInf(res.Bound, 0) {
		printKeyValue(w, "Bound", number("%.6g", res.Bound))
	}
	printKeyValue(w, "Selection", selectionString(res.Selection, 40))
	for i, x := range res.Selection {
		if x != res.Rounded[i] {
			printKeyValue(w, "Rounded", selectionString(res.Rounded, 40))
			break
		}
	}
	printKeyValue(w, "Nodes", number("%d", res.Stats.Evaluated))
	printKeyValue(w, "Elapsed", number("%s", res.Elapsed.Round(time.Microsecond)))
}
