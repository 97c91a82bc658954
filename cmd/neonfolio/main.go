package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jominkmathew/neonfolio/internal/chat"
	"github.com/jominkmathew/neonfolio/internal/config"
	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/export"
	"github.com/jominkmathew/neonfolio/internal/particle"
	"github.com/jominkmathew/neonfolio/internal/portfolio"
	"github.com/jominkmathew/neonfolio/internal/terminal"
	"github.com/jominkmathew/neonfolio/internal/tui"
	"github.com/jominkmathew/neonfolio/internal/voice"
)

var (
	configFile string
	preset     string
	theme      string
	section    string
	noBoot     bool
	seed       int64
	envFile    string

	// send
	fromName string
	fromMail string
	subject  string
	message  string

	// feeds
	ticks    int
	interval time.Duration
	plain    bool

	// snapshot
	fieldName string
	frames    int
	outFile   string
	width     float64
	height    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "neonfolio",
		Short:        "interactive developer portfolio for the terminal",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with relay credentials")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme (auto, cyberpunk, morning, dusk, retro)")
	rootCmd.Flags().StringVar(&section, "section", "hero", "section to open on")
	rootCmd.Flags().BoolVar(&noBoot, "no-boot", false, "skip the boot console")

	chatCmd := &cobra.Command{
		Use:   "chat [question...]",
		Short: "ask the portfolio assistant",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			r := chat.New().Answer(strings.Join(args, " "))
			fmt.Println(r.Text)
		},
	}

	termCmd := &cobra.Command{
		Use:   "term [command...]",
		Short: "run one mini terminal command",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTerm,
	}

	voiceCmd := &cobra.Command{
		Use:   "voice [transcript...]",
		Short: "resolve a spoken phrase to a section",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			c := voice.NewController(nil)
			fb, _ := c.Handle(voice.Transcript{Text: strings.Join(args, " ")})
			fmt.Println(fb.Text)
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "send a message through the contact relay",
		RunE:  runSend,
	}
	sendCmd.Flags().StringVar(&fromName, "name", "", "your name")
	sendCmd.Flags().StringVar(&fromMail, "email", "", "your email")
	sendCmd.Flags().StringVar(&subject, "subject", "", "subject line")
	sendCmd.Flags().StringVar(&message, "message", "", "message body")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "neonfolio.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration and particle presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tTHEME\tFPS\tFEEDS\tRELAY")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\n", name, c.Theme, c.FPS, c.Feeds.Enabled, c.Contact.Relay)
			}
			w.Flush()

			fmt.Println()
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tCAP\tCOUNT\tBOUNDARY\tEDGES")
			for _, name := range particle.PresetNames() {
				p, _ := particle.Preset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.0f\n", name, p.Cap, p.Count, p.Boundary, p.EdgeThreshold)
			}
			w.Flush()
		},
	}

	feedsCmd := &cobra.Command{
		Use:   "feeds",
		Short: "stream the simulated live-system feeds",
		RunE:  runFeeds,
	}
	feedsCmd.Flags().IntVar(&ticks, "ticks", 0, "frames to print (0 = until interrupted)")
	feedsCmd.Flags().DurationVar(&interval, "interval", time.Second, "time between frames")
	feedsCmd.Flags().BoolVar(&plain, "plain", false, "scroll instead of repainting")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a particle field frame to SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&fieldName, "field", "network", "field preset (network, name, trail)")
	snapshotCmd.Flags().IntVar(&frames, "frames", 120, "frames to simulate before rendering")
	snapshotCmd.Flags().Float64Var(&width, "width", 1280, "surface width")
	snapshotCmd.Flags().Float64Var(&height, "height", 720, "surface height")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(chatCmd, termCmd, voiceCmd, sendCmd, configCmd, presetsCmd, feedsCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and environment, in that order.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func newRand(cfg *config.Config) *rand.Rand {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	if portfolio.IndexOf(section) < 0 {
		return fmt.Errorf("unknown section: %s (available: %v)", section, portfolio.SectionIDs())
	}
	return tui.Run(tui.Options{
		Config:   cfg,
		Rand:     newRand(cfg),
		SkipBoot: noBoot,
		Section:  section,
	})
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t := terminal.New(newRand(cfg), time.Now)
	res := t.Execute(strings.Join(args, " "))
	for _, l := range res.Lines {
		fmt.Println(l.Text)
	}
	if res.Goto != "" {
		fmt.Printf("→ #%s\n", res.Goto)
	}
	for _, l := range res.Lines {
		if l.Kind == terminal.KindError {
			return errors.New("command failed")
		}
	}
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	form := contact.NewForm(cfg.Mailer())
	form.Fields = contact.Message{Name: fromName, Email: fromMail, Subject: subject, Body: message}
	msg, err := form.Submit()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SendTimeout())
	defer cancel()
	fmt.Println(form.ButtonLabel())
	sendErr := form.Transmit(ctx, msg)
	form.Complete(sendErr, time.Now())
	fmt.Println(form.Status())
	if sendErr != nil {
		return fmt.Errorf("send: %w", sendErr)
	}
	return nil
}

func runFeeds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := tui.NewLiveRenderer(os.Stdout, newRand(cfg), !plain)
	err = r.Run(ctx, ticks, interval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var pc particle.Config
	switch fieldName {
	case "network":
		pc = cfg.Particles.Network
	case "name":
		pc = cfg.Particles.Name
	case "trail":
		pc = cfg.Particles.Trail
	default:
		return fmt.Errorf("unknown field: %s (available: network, name, trail)", fieldName)
	}
	f, err := particle.New(pc, newRand(cfg))
	if err != nil {
		return err
	}
	svg := export.Snapshot(f, width, height, frames)

	out := os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	_, err = svg.WriteTo(out)
	return err
}
