package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/catalog"
	"github.com/mixkraft/seqmix/sequence"
)

// OptimizeOptions holds flags for the optimize command.
type OptimizeOptions struct {
	*RootOptions

	ConfigPath string
	Output     string

	BPMTolerance  float64
	HalfDouble    bool
	HarmonicLevel string
	MaxViolations float64
	EnergyFlow    bool
	EnergyWeight  float64
	TimeLimit     float64
	MaxDuration   float64
	TargetLength  int
	MustInclude   []string
	StartTrack    string
	EndTrack      string

	RekordboxDB     string
	Playlist        string
	RekordboxExport string
	PlaylistName    string
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OptimizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "optimize [tracks.json]",
		Short: "Order tracks into a mixable playlist",
		Long: `Order a track list into the longest playlist whose consecutive tracks
are tempo-compatible and harmonically close.

Tracks come from a JSON file, or from a decrypted Rekordbox database
when --rekordbox-db is given. The result is printed as JSON to stdout
or written with --output.

Examples:
  seqmix optimize tracks.json
  seqmix optimize tracks.json --bpm-tolerance 8 --harmonic-level moderate
  seqmix optimize tracks.json -o result.json --time-limit 120
  seqmix optimize --rekordbox-db master.db --playlist "Warmup"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, opts, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.ConfigPath, "config", "", "YAML config file with optimize settings")
	fl.StringVarP(&opts.Output, "output", "o", "", "output JSON file (default: stdout)")

	fl.Float64Var(&opts.BPMTolerance, "bpm-tolerance", 10, "maximum BPM difference for a direct match")
	fl.BoolVar(&opts.HalfDouble, "half-double", true, "accept halftime and doubletime tempo matches")
	fl.StringVar(&opts.HarmonicLevel, "harmonic-level", "strict", "harmonic compatibility level (strict|moderate|relaxed)")
	fl.Float64Var(&opts.MaxViolations, "max-violations", 0.10, "maximum fraction of non-harmonic transitions")
	fl.BoolVar(&opts.EnergyFlow, "energy-flow", true, "require non-decreasing energy across the playlist")
	fl.Float64Var(&opts.EnergyWeight, "energy-weight", 0, "reward weight for upward energy transitions")
	fl.Float64Var(&opts.TimeLimit, "time-limit", 60, "solver time limit in seconds")
	fl.Float64Var(&opts.MaxDuration, "max-duration", 0, "maximum total playlist duration in seconds")
	fl.IntVar(&opts.TargetLength, "target-length", 0, "exact number of tracks to select")
	fl.StringSliceVar(&opts.MustInclude, "must-include", nil, "track IDs that must appear in the playlist")
	fl.StringVar(&opts.StartTrack, "start", "", "track ID forced to open the playlist")
	fl.StringVar(&opts.EndTrack, "end", "", "track ID forced to close the playlist")

	fl.StringVar(&opts.RekordboxDB, "rekordbox-db", "", "decrypted Rekordbox database to read tracks from")
	fl.StringVar(&opts.Playlist, "playlist", "", "Rekordbox playlist name (default: whole collection)")
	fl.StringVar(&opts.RekordboxExport, "rekordbox-export", "", "directory to write a Rekordbox XML export into")
	fl.StringVar(&opts.PlaylistName, "name", "seqmix", "playlist name used in exports")

	return cmd
}

func runOptimize(cmd *cobra.Command, opts *OptimizeOptions, args []string) error {
	tracks, err := loadInput(cmd.Context(), opts, args)
	if err != nil {
		return err
	}
	slog.Info("tracks loaded", "count", len(tracks))

	seqOpts, err := buildOptions(cmd, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := sequence.Optimize(tracks, seqOpts)
	if err != nil {
		return err
	}
	slog.Info("optimization finished",
		"status", res.Status,
		"selected", res.TracksSelected,
		"violations", res.Violations,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if opts.Output != "" {
		if err = catalog.SaveResult(opts.Output, res); err != nil {
			return err
		}
		slog.Info("result written", "path", opts.Output)
	} else {
		if err = catalog.EncodeResult(os.Stdout, res); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(res))

	if opts.RekordboxExport != "" {
		path, err := catalog.ExportFile(opts.RekordboxExport, opts.PlaylistName, res)
		if err != nil {
			return err
		}
		slog.Info("rekordbox XML exported", "path", path)
	}

	if res.Status == sequence.StatusInfeasible {
		return errors.New("no feasible playlist under the given constraints")
	}

	return nil
}

// loadInput reads tracks from the JSON argument or a Rekordbox library.
func loadInput(ctx context.Context, opts *OptimizeOptions, args []string) ([]sequence.Track, error) {
	if opts.RekordboxDB == "" {
		if len(args) != 1 {
			return nil, errors.New("cli: a tracks.json argument is required unless --rekordbox-db is set")
		}

		return catalog.LoadTracks(args[0])
	}

	lib, err := catalog.OpenLibrary(opts.RekordboxDB)
	if err != nil {
		return nil, err
	}
	defer lib.Close()

	var (
		tracks  []sequence.Track
		skipped int
	)
	if opts.Playlist != "" {
		tracks, skipped, err = lib.ReadPlaylist(ctx, opts.Playlist)
	} else {
		tracks, skipped, err = lib.ReadTracks(ctx)
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		slog.Warn("tracks skipped", "count", skipped, "reason", "missing key or tempo")
	}

	return tracks, nil
}

// buildOptions merges defaults, the config file and explicit flags, in
// that precedence order.
func buildOptions(cmd *cobra.Command, opts *OptimizeOptions) (sequence.Options, error) {
	var (
		cfg      Config
		fileOpts []sequence.Option
	)
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = LoadConfig(opts.ConfigPath); err != nil {
			return sequence.Options{}, err
		}
		if fileOpts, err = cfg.apply(); err != nil {
			return sequence.Options{}, err
		}
	}

	level, err := camelot.ParseLevel(opts.HarmonicLevel)
	if err != nil {
		return sequence.Options{}, err
	}

	flagOpts := map[string]sequence.Option{
		"bpm-tolerance":  sequence.WithBPMTolerance(opts.BPMTolerance),
		"half-double":    sequence.WithHalfDouble(opts.HalfDouble),
		"harmonic-level": sequence.WithLevel(level),
		"max-violations": sequence.WithMaxViolationFraction(opts.MaxViolations),
		"energy-flow":    sequence.WithEnergyFlow(opts.EnergyFlow),
		"energy-weight":  sequence.WithEnergyWeight(opts.EnergyWeight),
		"time-limit":     sequence.WithTimeBudget(time.Duration(opts.TimeLimit * float64(time.Second))),
		"max-duration":   sequence.WithMaxDuration(opts.MaxDuration),
		"target-length":  sequence.WithTargetLength(opts.TargetLength),
		"must-include":   sequence.WithMustInclude(opts.MustInclude...),
		"start":          sequence.WithStartTrack(opts.StartTrack),
		"end":            sequence.WithEndTrack(opts.EndTrack),
	}

	all := fileOpts
	// The library default budget is shorter than the command's, so the
	// flag default applies even untouched, unless the config file set one.
	if !cmd.Flags().Changed("time-limit") && cfg.TimeLimit == nil {
		all = append(all, flagOpts["time-limit"])
	}
	for name, opt := range flagOpts {
		if cmd.Flags().Changed(name) {
			all = append(all, opt)
		}
	}

	return sequence.DefaultOptions(all...), nil
}
