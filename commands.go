package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/chewbite/cblabels/config"
	"github.com/chewbite/cblabels/labels"
	"github.com/chewbite/cblabels/orchestrator"
	"github.com/chewbite/cblabels/table"
)

// app carries what every command needs once the root command has run.
type app struct {
	log  *logrus.Logger
	v    *viper.Viper
	conf *cfg.Root
	p    *orchestrator.Pipeline
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	a := &app{log: log, v: viper.New()}
	a.v.SetEnvPrefix("CBLABELS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "cblabels",
		Short:         "Clean, merge and summarise grazing and rumination label files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: config/$CONFIG_ENV/config.yaml or cblabels.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("viz-url", "", "visualization service URL")
	pf.String("outputs", "", "directory for report outputs")

	root.AddCommand(
		a.mergeCmd(),
		a.removeSilencesCmd(),
		a.removeBetweenCmd(),
		a.loadCmd(),
		a.framesCmd(),
		a.lengthCmd(),
		a.reportCmd(),
		a.batchCmd(),
	)
	return root
}

// flagKeys maps flags to the config keys they override. Several commands
// share a flag name, so binding happens for the command being run only.
var flagKeys = map[string]string{
	"log-level":     "pipeline.log_level",
	"viz-url":       "services.visualization.url",
	"outputs":       "paths.outputs",
	"max-len":       "labels.max_len",
	"silence-label": "labels.silence_label",
	"frame-len":     "labels.frame_len",
	"decimals":      "labels.decimals",
	"jobs":          "batch.jobs",
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		c   *cfg.Root
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		c, err = cfg.LoadFile(path)
	} else {
		c, err = cfg.Load()
	}
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	// File values are the defaults under flags and CBLABELS_* variables.
	a.v.SetDefault("pipeline.log_level", c.Pipeline.LogLvl)
	a.v.SetDefault("services.visualization.url", c.Services.Visualization.URL)
	a.v.SetDefault("paths.outputs", c.Paths.Outputs)
	a.v.SetDefault("labels.max_len", c.Labels.MaxLen)
	a.v.SetDefault("labels.silence_label", c.Labels.SilenceLabel)
	a.v.SetDefault("labels.frame_len", c.Labels.FrameLen)
	a.v.SetDefault("labels.decimals", c.Labels.Decimals)
	a.v.SetDefault("batch.jobs", c.Batch.Jobs)

	c.Pipeline.LogLvl = a.v.GetString("pipeline.log_level")
	c.Services.Visualization.URL = a.v.GetString("services.visualization.url")
	c.Paths.Outputs = a.v.GetString("paths.outputs")
	c.Labels.MaxLen = a.v.GetInt("labels.max_len")
	c.Labels.SilenceLabel = a.v.GetString("labels.silence_label")
	c.Labels.FrameLen = a.v.GetFloat64("labels.frame_len")
	c.Labels.Decimals = a.v.GetInt("labels.decimals")
	c.Batch.Jobs = a.v.GetInt("batch.jobs")
	if err := c.Validate(); err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(c.Pipeline.LogLvl)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.log.SetLevel(lvl)
	a.conf = c
	a.p = orchestrator.NewPipeline(c, a.log)
	return nil
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("start", 0, "drop labels before this second, cutting those that straddle it")
	cmd.Flags().Float64("end", 0, "drop labels after this second, cutting those that straddle it")
}

func window(cmd *cobra.Command) labels.Window {
	var w labels.Window
	if f := cmd.Flags().Lookup("start"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetFloat64("start")
		w.Start = &v
	}
	if f := cmd.Flags().Lookup("end"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetFloat64("end")
		w.End = &v
	}
	return w
}

func (a *app) mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge IN OUT",
		Short: "Merge contiguous equally labeled blocks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.p.MergeFile(args[0], args[1])
		},
	}
}

func (a *app) removeSilencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-silences IN OUT",
		Short: "Fold short silences into equally labeled neighbours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.p.RemoveSilences(args[0], args[1], a.conf.Labels.MaxLen, a.conf.Labels.SilenceLabel)
		},
	}
	addElisionFlags(cmd)
	cmd.Flags().String("silence-label", "", "label treated as silence")
	return cmd
}

func (a *app) removeBetweenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-between IN OUT",
		Short: "Fold short blocks lying between two blocks of --label into them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, _ := cmd.Flags().GetString("label")
			return a.p.RemoveBetweenGiven(args[0], args[1], anchor, a.conf.Labels.MaxLen)
		},
	}
	addElisionFlags(cmd)
	cmd.Flags().String("label", "", "label surrounding the blocks to remove")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func addElisionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-len", 0, "longest block removed, in seconds")
}

func (a *app) loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load the per-second activity series of a label file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, _ := cmd.Flags().GetBool("segmentation")
			s, err := a.p.LoadFile(args[0], window(cmd), seg)
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				return table.WriteIntervals(out, s.Intervals())
			}
			a.p.PrintRuns(s.Intervals())
			return nil
		},
	}
	addWindowFlags(cmd)
	cmd.Flags().Bool("segmentation", false, "collapse activities into a single segmentation label")
	cmd.Flags().String("out", "", "write the series as label runs to this file")
	return cmd
}

func (a *app) framesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames FILE",
		Short: "Split a label file into fixed-length labeled frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, _ := cmd.Flags().GetBool("segmentation")
			frames, err := a.p.LoadFramesFile(args[0], window(cmd), seg)
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				return table.WriteFrames(out, frames)
			}
			a.p.PrintFrames(frames)
			return nil
		},
	}
	addWindowFlags(cmd)
	cmd.Flags().Float64("frame-len", 0, "frame length in seconds")
	cmd.Flags().Int("decimals", 0, "decimal places label times are rounded to")
	cmd.Flags().Bool("segmentation", false, "collapse activities into a single segmentation label")
	cmd.Flags().String("out", "", "write the frames to this file")
	return cmd
}

func (a *app) lengthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "length FILE...",
		Short: "Print the labeled length of label files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				n, err := a.p.SignalLength(path, window(cmd))
				if err != nil {
					return err
				}
				a.p.PrintLength(path, n)
			}
			return nil
		},
	}
	addWindowFlags(cmd)
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Summarise a metrics report per activity and predictor and render violin plots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, _ := cmd.Flags().GetString("metric")
			_, err := a.p.Report(cmd.Context(), args[0], metric)
			return err
		},
	}
	cmd.Flags().String("metric", "frame_f1score", "report column to plot")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch OPERATION FILE...",
		Short: "Apply merge, remove-silences or remove-between to many files",
		Long: "Apply an operation to every FILE, writing results with the same base name " +
			"under --out-dir. OPERATION is merge, remove-silences or remove-between.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out-dir")
			anchor, _ := cmd.Flags().GetString("label")
			var op orchestrator.FileOp
			switch args[0] {
			case "merge":
				op = a.p.MergeFile
			case "remove-silences":
				op = func(in, out string) error {
					return a.p.RemoveSilences(in, out, a.conf.Labels.MaxLen, a.conf.Labels.SilenceLabel)
				}
			case "remove-between":
				if anchor == "" {
					return fmt.Errorf("remove-between needs --label")
				}
				op = func(in, out string) error {
					return a.p.RemoveBetweenGiven(in, out, anchor, a.conf.Labels.MaxLen)
				}
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			return a.p.Batch(cmd.Context(), args[1:], outDir, op)
		},
	}
	cmd.Flags().String("out-dir", "", "directory for the outputs")
	cmd.Flags().String("label", "", "anchor label for remove-between")
	cmd.Flags().Int("jobs", 0, "files processed at once")
	cmd.Flags().Int("max-len", 0, "longest block removed, in seconds")
	cmd.Flags().String("silence-label", "", "label treated as silence")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}
