package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ebiten-wrap/config"
	"ebiten-wrap/engine"
	"ebiten-wrap/gfx"
	"ebiten-wrap/gfx/ebitendev"
	"ebiten-wrap/logging"
	"ebiten-wrap/screens"
)

type app struct {
	configPath  string
	profileMode string

	cfg      *config.Config
	logger   zerolog.Logger
	messages *logging.MessageLog
	closers  []io.Closer
	profiler interface{ Stop() }
}

func main() {
	a := &app{}
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ebiten-wrap",
		Short:        "Run a scene of meshes and scripts on ebiten",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.profileMode, "profile", "", "write a cpu or mem profile to the working directory")

	run := &cobra.Command{
		Use:   "run",
		Short: "Open a window and run the configured scene",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run()
		},
	}

	var ticks int
	var realtime bool
	headless := &cobra.Command{
		Use:   "headless",
		Short: "Run the configured scene without a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("ticks") {
				ticks = a.cfg.Headless.Ticks
			}
			if ticks == 0 {
				realtime = true
			}
			return a.headless(cmd.Context(), ticks, realtime)
		},
	}
	headless.Flags().IntVar(&ticks, "ticks", config.DefaultHeadlessTicks, "number of ticks to run, 0 runs until interrupted")
	headless.Flags().BoolVar(&realtime, "realtime", false, "pace ticks at the configured TPS")

	check := &cobra.Command{
		Use:   "check",
		Short: "Load the asset manifest and scene without a GPU and report errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check()
		},
	}

	viewTexture := &cobra.Command{
		Use:   "view-texture PATH",
		Short: "Open a window showing a single texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.viewTexture(args[0])
		},
	}

	root.AddCommand(run, headless, check, viewTexture)
	return root
}

func (a *app) setup() error {
	switch a.profileMode {
	case "":
	case "cpu":
		a.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		a.profiler = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return eris.Errorf("unknown profile mode %q, want cpu or mem", a.profileMode)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closer)
	a.messages = logging.NewMessageLog(cfg.Log.Overlay, zerolog.InfoLevel)
	a.logger = logger.Hook(a.messages)
	a.logger.Debug().Str("config", a.configPath).Msg("configuration loaded")
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	if a.profiler != nil {
		a.profiler.Stop()
	}
}

func (a *app) newEngine(dev gfx.Device) (*engine.Engine, error) {
	eng, err := engine.New(a.cfg, dev, a.logger)
	if err != nil {
		return nil, err
	}
	if a.cfg.Scene != "" {
		ents, err := eng.LoadScene(a.cfg.Scene)
		if err != nil {
			eng.Close()
			return nil, err
		}
		a.logger.Info().Str("scene", a.cfg.Scene).Int("entities", len(ents)).Msg("scene loaded")
	}
	return eng, nil
}

func (a *app) applyWindow(title string) {
	w, h := a.cfg.Window.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	if a.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(a.cfg.Window.Fullscreen)
	ebiten.SetTPS(a.cfg.TPS)
}

func (a *app) run() error {
	eng, err := a.newEngine(ebitendev.New())
	if err != nil {
		return err
	}
	defer eng.Close()

	stack := screens.NewStack()
	stack.Push(screens.NewSceneScreen(stack, eng, a.messages))
	a.applyWindow(a.cfg.Window.Title)
	if err := ebiten.RunGame(stack); err != nil {
		return eris.Wrap(err, "run game")
	}
	logging.World(&a.logger, eng.World, zerolog.DebugLevel)
	return nil
}

func (a *app) headless(ctx context.Context, ticks int, realtime bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	eng, err := a.newEngine(&gfx.NullDevice{})
	if err != nil {
		return err
	}
	defer eng.Close()

	_, err = eng.RunHeadless(ctx, engine.HeadlessOptions{
		Ticks:    ticks,
		Realtime: realtime,
		TPS:      a.cfg.TPS,
	})
	return err
}

func (a *app) check() error {
	eng, err := a.newEngine(&gfx.NullDevice{})
	if err != nil {
		return err
	}
	defer eng.Close()
	logging.Components(&a.logger, eng.World, zerolog.InfoLevel)
	a.logger.Info().Strs("textures", eng.Assets.TextureNames()).Msg("check passed")
	return nil
}

func (a *app) viewTexture(path string) error {
	w, h := a.cfg.Window.Size()
	viewer, err := screens.NewTextureScreen(ebitendev.New(), path, w, h)
	if err != nil {
		return err
	}
	defer viewer.Close()

	a.applyWindow("Texture Viewer - " + path)
	if err := ebiten.RunGame(screens.NewStack(viewer)); err != nil {
		return eris.Wrap(err, "run texture viewer")
	}
	return nil
}
