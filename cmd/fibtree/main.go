package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fibtree/internal/anim"
	"github.com/san-kum/fibtree/internal/config"
	"github.com/san-kum/fibtree/internal/export"
	"github.com/san-kum/fibtree/internal/fibtree"
	"github.com/san-kum/fibtree/internal/logging"
	"github.com/san-kum/fibtree/internal/raster"
	"github.com/san-kum/fibtree/internal/storage"
	"github.com/san-kum/fibtree/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	minLevels  int
	maxLevels  int
	noGround   bool
	interval   time.Duration
	theme      string
	logLevel   string
	logFile    string
	logJSON    bool
	dataDir    string
	// render, animate and inspect
	outPath string
	levels  int
	upto    int
	scale   int
	save    bool
	asJSON  bool
)

// main runs the fibtree CLI and exits with status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the fibtree commands. With no subcommand it runs the
// live view.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fibtree",
		Short:        "grow fibonacci trees",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&minLevels, "min-levels", config.DefaultMinLevels, "smallest random tree")
	pf.IntVar(&maxLevels, "max-levels", config.DefaultMaxLevels, "largest random tree")
	pf.BoolVar(&noGround, "no-ground", false, "do not draw the ground strip")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
	pf.BoolVar(&logJSON, "log-json", false, "log as json")
	pf.StringVar(&dataDir, "data", ".fibtree", "directory for saved trees")

	rootCmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "time between frames")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one tree to png, webp or svg",
		RunE:  renderTree,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "tree.png", "output file")
	renderCmd.Flags().IntVar(&levels, "levels", 0, "tree levels (0 picks from the level range)")
	renderCmd.Flags().IntVar(&upto, "upto", 0, "draw levels 1 through N (0 draws all)")
	renderCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixels per scene unit")
	renderCmd.Flags().BoolVar(&save, "save", false, "record the tree in the data directory")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "write one growth cycle as an animated gif",
		RunE:  animateTree,
	}
	animateCmd.Flags().StringVarP(&outPath, "out", "o", "tree.gif", "output file")
	animateCmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "time between frames")
	animateCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixels per scene unit")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "print the branches of a tree",
		RunE:  inspectTree,
	}
	inspectCmd.Flags().IntVar(&levels, "levels", 0, "tree levels (0 picks from the level range)")
	inspectCmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as json")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved trees",
		RunE:  listTrees,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print a saved tree's branch table",
		Args:  cobra.ExactArgs(1),
		RunE:  showTree,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLEVELS\tINTERVAL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d-%d\t%s\n", name, p.MinLevels, p.MaxLevels, p.Interval)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(renderCmd, animateCmd, inspectCmd, listCmd, showCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("min-levels") {
		cfg.MinLevels = minLevels
	}
	if flags.Changed("max-levels") {
		cfg.MaxLevels = maxLevels
	}
	if flags.Changed("no-ground") {
		cfg.Ground = !noGround
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = logJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := viz.LookupTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("config: %w %q (have %s)", viz.ErrUnknownTheme, cfg.Theme, strings.Join(viz.ThemeNames(), ", "))
	}
	return cfg, nil
}

// newLogger writes to --log-file when given, otherwise to fallback. The
// returned closer is never nil.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	w, closer := fallback, func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}
	return logging.New(w, level, cfg.LogJSON), closer, nil
}

// setup is shared by every command: config, logger and a seeded rng.
func setup(cmd *cobra.Command, logTo io.Writer) (*config.Config, *slog.Logger, *rand.Rand, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log, closer, err := newLogger(cfg, logTo)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	s := cfg.Seeded(time.Now())
	cfg.Seed = s
	log.Debug("config loaded",
		"seed", s,
		"levels", fmt.Sprintf("%d-%d", cfg.MinLevels, cfg.MaxLevels),
		"preset", preset,
		"file", configFile)
	return cfg, log, rand.New(rand.NewSource(s)), closer, nil
}

func settings(cfg *config.Config) anim.Settings {
	return anim.Settings{
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		RootX:     cfg.RootX,
		RootY:     cfg.RootY,
		MinLevels: cfg.MinLevels,
		MaxLevels: cfg.MaxLevels,
		GroundTop: cfg.EffectiveGroundTop(),
	}
}

// growOne builds a single tree with the requested level count, or one drawn
// from the configured range when n is zero.
func growOne(cfg *config.Config, n int, rng *rand.Rand) (*fibtree.Tree, error) {
	if n == 0 {
		n = cfg.MinLevels + rng.Intn(cfg.MaxLevels-cfg.MinLevels+1)
	}
	return fibtree.New(cfg.RootX, cfg.RootY, n, rng)
}

// record describes a tree from growOne, noting whether its level count was
// drawn from the configured range.
func record(cfg *config.Config, tree *fibtree.Tree, output string) storage.Record {
	rec := storage.NewRecord(tree, cfg.Seed, output)
	if levels == 0 {
		rec = rec.DrawnFrom(cfg.MinLevels, cfg.MaxLevels)
	}
	return rec
}

func runLive(cmd *cobra.Command, args []string) error {
	// stderr would tear the alternate screen
	cfg, log, rng, closer, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closer()

	if err := viz.SetTheme(cfg.Theme); err != nil {
		return err
	}
	d, err := anim.New(settings(cfg), rng, log)
	if err != nil {
		return err
	}
	log.Info("live view", "interval", cfg.Interval, "theme", viz.CurrentTheme.Name)
	return viz.Run(d, cfg.Interval, float64(cfg.Width), float64(cfg.Height))
}

func renderTree(cmd *cobra.Command, args []string) error {
	cfg, log, rng, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer()

	format, err := export.FormatOf(outPath)
	if err != nil {
		return err
	}
	tree, err := growOne(cfg, levels, rng)
	if err != nil {
		return err
	}
	shown := tree.Levels()
	if upto > 0 {
		shown = upto
	}

	switch format {
	case export.FormatSVG:
		svg := export.NewSVG(cfg.Width, cfg.Height)
		anim.Paint(svg, settings(cfg), tree, shown)
		err = export.WriteSVG(outPath, svg)
	case export.FormatGIF:
		return fmt.Errorf("render writes still images; use animate for %s", outPath)
	default:
		surface := raster.New(cfg.Width, cfg.Height, float64(cfg.Scale))
		anim.Paint(surface, settings(cfg), tree, shown)
		err = export.WriteImage(outPath, surface.Image())
	}
	if err != nil {
		return err
	}

	log.Info("rendered tree",
		"out", outPath,
		"levels", tree.Levels(),
		"branches", tree.Len(),
		"shown", min(shown, tree.Levels()))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d levels, %d branches)\n", outPath, tree.Levels(), tree.Len())

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(record(cfg, tree, outPath), fibtree.Describe(tree))
	if err != nil {
		return err
	}
	log.Info("saved tree", "id", id, "dir", dataDir)
	fmt.Fprintf(cmd.OutOrStdout(), "saved as %s\n", id)
	return nil
}

func animateTree(cmd *cobra.Command, args []string) error {
	cfg, log, rng, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer()

	d, err := anim.New(settings(cfg), rng, log)
	if err != nil {
		return err
	}

	tree := d.Tree()
	canvases, err := d.RenderCycle(context.Background(), func() anim.Canvas {
		return raster.New(cfg.Width, cfg.Height, float64(cfg.Scale))
	})
	if err != nil {
		return err
	}
	n := len(canvases)
	frames := make([]image.Image, n)
	for i, c := range canvases {
		frames[i] = c.(*raster.Surface).Image()
	}

	if err := export.WriteAnimation(outPath, frames, cfg.Interval); err != nil {
		return err
	}
	log.Info("wrote animation", "out", outPath, "frames", n, "levels", tree.Levels())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d frames, %d levels)\n", outPath, n, tree.Levels())
	return nil
}

func inspectTree(cmd *cobra.Command, args []string) error {
	cfg, _, rng, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer()

	tree, err := growOne(cfg, levels, rng)
	if err != nil {
		return err
	}
	rows := fibtree.Describe(tree)

	out := cmd.OutOrStdout()
	if asJSON {
		return storage.ExportJSON(out, record(cfg, tree, ""), rows)
	}

	color.New(color.Bold).Fprintf(out, "tree: %d levels, %d branches, trunk width %d, seed %d\n\n",
		tree.Levels(), tree.Len(), tree.Trunk().Width(), cfg.Seed)
	printRows(out, rows)

	fmt.Fprintln(out)
	for level := 2; level <= tree.Levels(); level++ {
		if n := tree.Orphans(level); n > 0 {
			color.New(color.FgRed).Fprintf(out, "level %d: %d orphans\n", level, n)
		}
	}
	if widths := fibtree.MaxWidths(tree); len(widths) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(widths,
			asciigraph.Height(8),
			asciigraph.Caption("widest branch per level")))
	}
	return nil
}

// printRows writes the branch table, each line in its branch's color.
func printRows(out io.Writer, rows []fibtree.Row) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tLEVEL\tPARENT\tLEFT\tRIGHT\tWIDTH\tANGLE\tCOLOR")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%d\t%.0f\t(%d,%d,%d)\n",
			r.Index, r.Level, link(r.Parent), link(r.Left), link(r.Right),
			r.Width, r.Angle, r.Color.R, r.Color.G, r.Color.B)
	}
	w.Flush()

	// color whole lines so ansi codes do not skew the columns
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	color.New(color.Bold).Fprintln(out, lines[0])
	for i, line := range lines[1:] {
		c := rows[i].Color
		color.RGB(c.R, c.G, c.B).Fprintln(out, line)
	}
}

func listTrees(cmd *cobra.Command, args []string) error {
	recs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintf(out, "no saved trees in %s\n", dataDir)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tSEED\tLEVELS\tBRANCHES\tOUTPUT")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Timestamp.Format(time.DateTime), r.Seed, r.Levels, r.Branches, r.Output)
	}
	return w.Flush()
}

func showTree(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color.New(color.Bold).Fprintf(out, "%s: %d levels, %d branches, seed %d\n",
		rec.ID, rec.Levels, rec.Branches, rec.Seed)
	fmt.Fprintf(out, "regrow with: fibtree render %s\n\n", strings.Join(rec.ReproduceFlags(), " "))
	printRows(out, rows)
	return nil
}

func link(i int) string {
	if i == fibtree.None {
		return "-"
	}
	return fmt.Sprintf("%d", i)
}
