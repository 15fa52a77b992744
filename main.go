// Command ytplay is a terminal music player for YouTube Music.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/app"
	"github.com/llehouerou/ytplay/internal/catalog"
	"github.com/llehouerou/ytplay/internal/config"
	"github.com/llehouerou/ytplay/internal/errmsg"
	"github.com/llehouerou/ytplay/internal/icons"
	"github.com/llehouerou/ytplay/internal/logger"
	"github.com/llehouerou/ytplay/internal/lrclib"
	"github.com/llehouerou/ytplay/internal/lyrics"
	"github.com/llehouerou/ytplay/internal/mpris"
	"github.com/llehouerou/ytplay/internal/notify"
	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/player"
	"github.com/llehouerou/ytplay/internal/remote"
	"github.com/llehouerou/ytplay/internal/render"
	"github.com/llehouerou/ytplay/internal/state"
	"github.com/llehouerou/ytplay/internal/stderr"
	"github.com/llehouerou/ytplay/internal/stream"
	lyricsui "github.com/llehouerou/ytplay/internal/ui/lyrics"
)

var _ render.Sink = (*player.Speaker)(nil)

var (
	cli        = kingpin.New("ytplay", "Terminal music player for YouTube Music")
	configPath = cli.Flag("config", "Path to a config file").Short('c').String()
	logLevel   = cli.Flag("log-level", "Override the log level (debug, info, warn, error)").String()
	remoteFlag = cli.Flag("remote", "Start the remote control server").Bool()
	remoteAddr = cli.Flag("remote-addr", "Remote control listen address").String()
	noAudio    = cli.Flag("no-audio", "Do not open the speaker").Bool()
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	logCloser, err := logger.Init(logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	})
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer logCloser.Close()

	if cfg.Log.Output == "file" {
		capture, err := stderr.Start()
		if err != nil {
			zlog.Warn().Err(err).Msg("stderr capture unavailable")
		} else {
			defer capture.Stop()
		}
	}

	icons.Init(cfg.Icons)

	stateMgr, err := state.Open()
	if err != nil {
		return errors.Wrap(err, "open state")
	}
	defer stateMgr.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := playback.NewController(playback.NewStore(), stateMgr,
		playback.WithDefaultVolume(cfg.Player.DefaultVolume))

	sink, analyser, err := openSink(cfg)
	if err != nil {
		return err
	}
	var opts []render.Option
	var frames <-chan render.Frame
	if analyser != nil && cfg.Player.VisualizerEnabled() {
		viz := render.NewSpectrum(analyser, render.DefaultFrameInterval)
		opts = append(opts, render.WithVisualizer(viz))
		frames = viz.Frames()
	}

	resolver := stream.New(stream.Config{
		Format:  cfg.Stream.Format,
		Timeout: cfg.Stream.Timeout,
		Proxy:   cfg.Stream.Proxy,
	})
	engine := render.NewEngine(ctrl, resolver, sink, opts...)
	defer engine.Close()

	var lyricsSource lyricsui.Fetcher
	if cfg.LyricsEnabled() {
		client := lrclib.New(lrclib.WithBaseURL(cfg.Lyrics.BaseURL))
		lyricsSource = lyrics.NewSource(client, cfg.Lyrics.CacheDir)
	}

	startDesktop(ctx, cfg, ctrl, engine)

	if cfg.Remote.Enabled {
		srv := remote.NewServer(ctrl)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Remote.Addr); err != nil {
				zlog.Error().Err(err).Msg(errmsg.Format(errmsg.OpRemoteStart, err))
			}
		}()
	}

	m := app.New(app.Deps{
		Context:   ctx,
		Transport: ctrl,
		Catalog: catalog.New(catalog.Config{
			SearchLimit:     cfg.Catalog.SearchLimit,
			FeaturedLimit:   cfg.Catalog.FeaturedLimit,
			FeaturedQueries: cfg.Catalog.FeaturedQueries,
			Timeout:         cfg.Catalog.Timeout,
		}),
		Lyrics: lyricsSource,
		Engine: engine,
		Frames: frames,
		Remote: cfg.Remote.Enabled,
	})
	defer m.Close()

	zlog.Info().Msg("starting ytplay")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run ui")
	}
	return nil
}

// startDesktop hooks media keys and now-playing notifications up to the
// session bus. Both are best effort.
func startDesktop(ctx context.Context, cfg *config.Config, ctrl *playback.Controller, engine *render.Engine) {
	if cfg.Desktop.MPRISEnabled() {
		adapter, err := mpris.New(ctrl, engine)
		if err != nil {
			zlog.Warn().Err(err).Msg("mpris unavailable")
		} else {
			go func() {
				<-ctx.Done()
				_ = adapter.Close()
			}()
		}
	}
	if cfg.Desktop.Notifications {
		n, err := notify.New()
		if err != nil {
			zlog.Warn().Err(err).Msg("notifications unavailable")
			return
		}
		go notify.WatchTracks(ctx, n, ctrl.Watch())
	}
}

func applyFlags(cfg *config.Config) {
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *remoteFlag {
		cfg.Remote.Enabled = true
	}
	if *remoteAddr != "" {
		cfg.Remote.Addr = *remoteAddr
	}
	if *noAudio {
		cfg.Player.Output = "none"
	}
}

// openSink picks the audio output. The analyser is nil when the sink cannot
// feed the visualizer.
func openSink(cfg *config.Config) (render.Sink, render.Analyser, error) {
	if cfg.Player.Output == "none" {
		return render.NewLogSink(), nil, nil
	}
	speaker, err := player.New(player.Config{FFmpeg: cfg.Player.FFmpeg})
	if err != nil {
		if cfg.Player.Output == "speaker" {
			return nil, nil, errors.Wrap(err, "open speaker")
		}
		zlog.Warn().Err(err).Msg("speaker unavailable, audio disabled")
		return render.NewLogSink(), nil, nil
	}
	return speaker, speaker, nil
}
