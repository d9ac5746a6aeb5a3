package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/config"
	"github.com/ThatOtherAndrew/Tinsel/internal/draw"
	"github.com/ThatOtherAndrew/Tinsel/internal/input"
	"github.com/ThatOtherAndrew/Tinsel/internal/loop"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/opengl"
	"github.com/ThatOtherAndrew/Tinsel/internal/scene"
	"github.com/ThatOtherAndrew/Tinsel/internal/spawn"
	"github.com/ThatOtherAndrew/Tinsel/pkg/window"
	"github.com/spf13/cobra"
)

const landmarkQueueSize = 8

var listenAddr string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the tree window and start the hand tracking server",
	Args:  cobra.NoArgs,
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()

	runCmd.Flags().StringVar(&listenAddr, "listen", "", "landmark server address, overrides listen_addr (\"off\" disables it)")
}

func Run(cmd *cobra.Command, args []string) {
	settings, logger, path, err := loadSettings("tinsel")
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if cmd.Flags().Changed("listen") {
		settings.ListenAddr = listenAddr
		if listenAddr == "off" {
			settings.ListenAddr = ""
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	win, err := window.NewWindow(settings.Window.Width, settings.Window.Height, settings.Window.Title)
	if err != nil {
		log.Fatal("Failed to create window:", err)
	}
	defer win.Destroy()

	glApp := opengl.New()
	if err := glApp.InitGL(); err != nil {
		log.Fatal("Failed to initialize OpenGL:", err)
	}
	defer glApp.Delete()

	renderer := draw.New(glApp, scene.DefaultFog)
	renderer.SetPixelRatio(win.PixelRatio())
	defer renderer.Delete()

	session := spawn.New(nil).NewSession(settings.TreeParticles, settings.SnowParticles)
	logger.Infof("Generated %d tree and %d snow particles", session.Tree.Len(), session.Snow.Len())

	queue := input.NewQueue(landmarkQueueSize)
	defer queue.Close()

	width, height := win.GetSize()
	camera := scene.NewCamera(1)
	frames := loop.New(session, queue, renderer, camera, logger)
	frames.SetPointSizes(settings.TreePointSize, settings.SnowPointSize)
	frames.Resize(width, height)
	win.SetResizeCallback(func(width, height int) {
		renderer.SetPixelRatio(win.PixelRatio())
		frames.Resize(width, height)
	})

	if settings.ListenAddr != "" {
		server := input.NewServer(settings.ListenAddr, captureOptions(settings), func(f input.Frame) {
			if err := queue.Push(f); err != nil {
				logger.Debugf("dropped landmark frame: %v", err)
			}
		}, logger)
		if err := server.Start(ctx); err != nil {
			log.Fatal("Failed to start landmark server:", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warnf("Failed to stop landmark server: %v", err)
			}
		}()
		logger.Infof("Open http://%s/ in a browser to start hand tracking", server.Addr())
	} else {
		logger.Infof("Landmark server disabled")
	}

	// Watch delivers on its own goroutine; GL state only changes on this one.
	reloads := make(chan *config.Settings, 1)
	go func() {
		err := config.Watch(ctx, path, logger, func(s *config.Settings) {
			select {
			case <-reloads:
			default:
			}
			reloads <- s
		})
		if err != nil {
			logger.Warnf("Settings hot reload disabled: %v", err)
		}
	}()

	title := ""
	for !win.ShouldClose() && ctx.Err() == nil {
		win.PollEvents()

		select {
		case s := <-reloads:
			logger.SetDebug(debug || s.Debug)
			frames.SetPointSizes(s.TreePointSize, s.SnowPointSize)
		default:
		}

		frames.Tick(time.Since(session.StartTime))

		if t := windowTitle(settings.Window.Title, session); t != title {
			title = t
			win.SetTitle(title)
		}

		win.SwapBuffers()
	}

	logger.Infof("Rendered %d frames, dropped %d landmark frames", session.Frame, queue.Dropped())
}

func captureOptions(s *config.Settings) input.CaptureOptions {
	opts := input.DefaultCaptureOptions
	opts.ModelComplexity = s.ModelComplexity
	opts.MinDetectionConfidence = s.MinDetectionConfidence
	opts.MinTrackingConfidence = s.MinTrackingConfidence
	return opts
}

func windowTitle(base string, s *models.Session) string {
	if !s.Loaded {
		return base + " - waiting for camera"
	}
	if s.Status == "" {
		return base
	}
	return base + " - " + s.Status
}
