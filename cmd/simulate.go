package cmd

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	gestures "github.com/ThatOtherAndrew/Tinsel/internal/gesture"
	"github.com/ThatOtherAndrew/Tinsel/internal/input"
	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/ThatOtherAndrew/Tinsel/internal/loop"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/scene"
	"github.com/ThatOtherAndrew/Tinsel/internal/spawn"
	"github.com/spf13/cobra"
)

const frameInterval = time.Second / 60

var (
	simFrames int
	simScript string
	simSeed   uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the tree without a window, driven by a gesture script",
	Long: `simulate steps the tree headlessly at 60 frames per second.

The script is a comma separated list of gestures, one per frame, repeated
until --frames is reached:

  pinch:<x>   pinch with the index fingertip at normalised x
  fist        closed hand
  open        open hand
  none        a frame with no hand in view`,
	Args: cobra.NoArgs,
	Run:  Simulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVar(&simFrames, "frames", 120, "number of frames to simulate")
	simulateCmd.Flags().StringVar(&simScript, "script", "open", "gesture script")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "particle generator seed")
}

type scriptStep struct {
	Gesture models.GestureState
	X       float64
}

func parseScript(script string) ([]scriptStep, error) {
	var steps []scriptStep
	for _, raw := range strings.Split(script, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		name, arg, hasArg := strings.Cut(tok, ":")
		switch name {
		case "pinch":
			x := 0.5
			if hasArg {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return nil, fmt.Errorf("bad pinch position %q: %w", arg, err)
				}
				x = v
			}
			steps = append(steps, scriptStep{Gesture: models.GesturePinching, X: x})
		case "fist":
			steps = append(steps, scriptStep{Gesture: models.GestureFist, X: 0.5})
		case "open":
			steps = append(steps, scriptStep{Gesture: models.GestureOpen, X: 0.5})
		case "none":
			steps = append(steps, scriptStep{Gesture: models.GestureNone})
		default:
			return nil, fmt.Errorf("unknown gesture %q", tok)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty gesture script")
	}
	return steps, nil
}

// simulation is a headless run against the recording scene adapter.
type simulation struct {
	session  *models.Session
	recorder *scene.Recorder
	queue    *input.Queue
	loop     *loop.Loop
}

func newSimulation(treeCount, snowCount int, seed uint64, logger logging.Logger) *simulation {
	session := spawn.New(rand.NewPCG(seed, seed)).NewSession(treeCount, snowCount)
	recorder := scene.NewRecorder()
	queue := input.NewQueue(landmarkQueueSize)
	return &simulation{
		session:  session,
		recorder: recorder,
		queue:    queue,
		loop:     loop.New(session, queue, recorder, scene.NewCamera(4.0/3.0), logger),
	}
}

func (s *simulation) run(steps []scriptStep, frames int) error {
	for i := range frames {
		step := steps[i%len(steps)]
		f := input.Frame{
			Landmarks: gestures.Pose(step.Gesture, step.X),
			Received:  time.Now(),
			Source:    "script",
		}
		if err := s.queue.Push(f); err != nil {
			return err
		}
		s.loop.Tick(time.Duration(i) * frameInterval)
	}
	return nil
}

func (s *simulation) report(w io.Writer) {
	t := s.session.Transform
	low, high := snowExtent(s.session.Snow)
	fmt.Fprintf(w, "frames:   %d\n", s.session.Frame)
	fmt.Fprintf(w, "gesture:  %s\n", s.session.Gesture)
	fmt.Fprintf(w, "status:   %s\n", s.session.Status)
	fmt.Fprintf(w, "rotation: %.4f rad\n", t.RotationY)
	fmt.Fprintf(w, "explode:  %.4f\n", s.session.Interaction.ExplodeValue)
	fmt.Fprintf(w, "scale:    %.4f %.4f %.4f\n", t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	fmt.Fprintf(w, "opacity:  %.4f\n", t.Opacity)
	fmt.Fprintf(w, "snow y:   %.3f .. %.3f\n", low, high)
}

func snowExtent(snow models.SnowField) (float32, float32) {
	if snow.Len() == 0 {
		return 0, 0
	}
	low, high := float32(math.Inf(1)), float32(math.Inf(-1))
	for i := range snow.Len() {
		y := snow.Positions[i*3+1]
		low = min(low, y)
		high = max(high, y)
	}
	return low, high
}

func Simulate(cmd *cobra.Command, args []string) {
	settings, logger, _, err := loadSettings("simulate")
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	steps, err := parseScript(simScript)
	if err != nil {
		log.Fatal("Invalid script:", err)
	}

	sim := newSimulation(settings.TreeParticles, settings.SnowParticles, simSeed, logger)
	if err := sim.run(steps, simFrames); err != nil {
		log.Fatal("Simulation failed:", err)
	}
	sim.report(cmd.OutOrStdout())
}
