package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/animation"
	"chosenoffset.com/broadside/internal/boundary"
	"chosenoffset.com/broadside/internal/character"
	"chosenoffset.com/broadside/internal/config"
	"chosenoffset.com/broadside/internal/core/clock"
	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/dock"
	"chosenoffset.com/broadside/internal/input"
	"chosenoffset.com/broadside/internal/logging"
	"chosenoffset.com/broadside/internal/physics"
	"chosenoffset.com/broadside/internal/render"
	"chosenoffset.com/broadside/internal/steering"
	"chosenoffset.com/broadside/internal/trajectory"
	"chosenoffset.com/broadside/internal/ui/hud"
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Camera       Camera
	WhiteImg     render.Image
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Config       *config.Config
	Logger       *slog.Logger

	// Simulation
	World         *physics.World
	ShipBody      *physics.RigidBody
	CharacterBody *physics.RigidBody
	GameState     *gamestate.GameState
	Scheduler     *clock.Scheduler

	// Systems, in update order
	Input      *input.Poller
	Walker     *character.Controller
	Binder     *dock.Binder
	Steering   *steering.Controller
	Boundary   *boundary.Monitor
	Trajectory *trajectory.Predictor

	// Animation
	Machine  *animation.Machine
	Mixer    *animation.Mixer
	Animator *animation.Animator

	// HUD
	GameHUD *hud.HUD

	// Last frame's results
	Prediction trajectory.Prediction
	Snapshot   input.Snapshot

	frames     *clock.Frames
	FrameCount int
}

// New builds a game from cfg. The ship starts at cfg.Ship.Start and the
// character stands on its deck.
func New(cfg *config.Config, r render.Renderer, in render.InputManager, logger *slog.Logger, width, height int) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	world := physics.NewWorld(cfg.Physics.Gravity.Mgl(), cfg.Physics.Timestep)
	ship := world.NewBody(physics.BodyDesc{
		Name:         "ship",
		Type:         physics.Kinematic,
		Position:     cfg.Ship.Start.Mgl(),
		LockRotation: [3]bool{true, false, true},
	})
	crew := world.NewBody(physics.BodyDesc{
		Name:         "character",
		Type:         physics.Dynamic,
		GravityScale: 1,
		Position:     spatial.LocalToWorld(ship, cfg.Character.Start.Mgl()),
		LockRotation: [3]bool{true, false, true},
	})
	crew.RideOn(ship, cfg.Ship.DeckHeight)

	state := gamestate.New()
	state.SetShip(ship)
	state.SetCharacter(crew)
	state.SetDebug(cfg.Debug)
	state.InitializeAnimationSet(cfg.AnimationSet())
	state.Reset()

	machine := animation.NewMachine(state)
	mixer := animation.NewMixer(cfg.Animation.Durations)
	animator := animation.NewAnimator(machine, state, mixer, logging.Component(logger, "animation"))
	animator.SetFade(cfg.Animation.FadeSeconds)

	resolver := dock.NewResolver(cfg.Anchors(), cfg.Dock.CaptureRadius)
	sched := clock.NewScheduler()

	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Camera:       Camera{Scale: cfg.Window.Scale},
		Renderer:     r,
		InputMgr:     in,
		Config:       cfg,
		Logger:       logger,

		World:         world,
		ShipBody:      ship,
		CharacterBody: crew,
		GameState:     state,
		Scheduler:     sched,

		Input:      input.NewPoller(in, input.DefaultBindings(), cfg.InputSettings()),
		Walker:     character.NewController(cfg.CharacterSettings(), state, crew, machine),
		Binder:     dock.NewBinder(state, world, resolver, machine, logging.Component(logger, "dock")),
		Steering:   steering.NewController(cfg.SteeringSettings(), state, resolver),
		Boundary:   boundary.NewMonitor(cfg.BoundarySettings(), state, sched, logging.Component(logger, "boundary")),
		Trajectory: trajectory.NewPredictor(cfg.TrajectorySettings(), state, world, resolver),

		Machine:  machine,
		Mixer:    mixer,
		Animator: animator,

		GameHUD: hud.New(&cfg.HUD, width, height),

		frames: clock.NewFrames(cfg.Window.TPS),
	}
	g.Boundary.SetOnTeleport(g.onTeleport)
	if r != nil {
		g.WhiteImg = r.NewImage(3, 3)
		g.WhiteImg.Fill(whiteColor)
	}
	g.Camera.Follow(ship.Translation())
	return g, nil
}

// Update handles one tick of game logic.
func (g *Game) Update() error {
	g.FrameCount++
	dt := g.frames.Next()

	// 1. Input, dock trigger and character movement
	g.Snapshot = g.Input.Poll(dt)
	if g.Snapshot.JustPressed(input.Debug) {
		g.GameState.ToggleDebug()
	}
	if g.Snapshot.DockTriggered {
		g.toggleDock()
	}
	g.Walker.Update(g.Snapshot)

	// 2. Physics
	g.World.Step()

	// 3. Systems that read the stepped world
	g.Steering.Update(g.Snapshot.Held(input.Leftward), g.Snapshot.Held(input.Rightward))
	g.Boundary.Update()
	g.Scheduler.Advance(dt)
	g.Prediction = g.Trajectory.Predict(g.Scheduler.Now().Seconds())

	// 4. Animation
	g.Animator.Suspend(g.GameState.HasJoint())
	g.Animator.Sync()
	g.Mixer.Update(dt.Seconds())

	g.Camera.Follow(g.ShipBody.Translation())
	g.GameHUD.Update(g.hudFrame(), dt)
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.GameHUD.Push(text)
	g.Logger.Info("message", "text", text)
}

// onTeleport carries a free character along with the ship. A docked
// character follows through the joint on the next step.
func (g *Game) onTeleport(from mgl64.Vec3) {
	if !g.GameState.HasJoint() {
		delta := g.ShipBody.Translation().Sub(from)
		g.CharacterBody.SetTranslation(g.CharacterBody.Translation().Add(delta), true)
	}
	g.ShowMessage("The tide carries you home")
}

func (g *Game) toggleDock() {
	if g.GameState.HasJoint() {
		anchor, _ := g.Binder.DockedAnchor()
		if err := g.Binder.Toggle(); err == nil {
			g.ShowMessage(fmt.Sprintf("Left the %s", anchor.ID))
		}
		return
	}

	switch err := g.Binder.Toggle(); {
	case err == nil:
		anchor, _ := g.Binder.DockedAnchor()
		g.ShowMessage(fmt.Sprintf("Manning the %s", anchor.ID))
	case errors.Is(err, dock.ErrOutOfRange):
		g.ShowMessage("Too far from any post")
	}
}

// Hint returns the dock hint for the current position.
func (g *Game) Hint() string {
	if anchor, ok := g.Binder.DockedAnchor(); ok {
		if anchor.ID == dock.CenterRudder {
			return "A/D to steer, hold E to leave the helm"
		}
		return fmt.Sprintf("Hold E to leave the %s", anchor.ID)
	}
	match, err := g.Binder.Resolver().Resolve(g.ShipBody, g.CharacterBody.Translation())
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Hold E to man the %s", match.Anchor.ID)
}

func (g *Game) hudFrame() hud.Frame {
	heading, ok := g.Boundary.HeadingToCenter()
	f := hud.Frame{
		Warning:      g.Boundary.Warning(),
		TimeLeft:     g.Boundary.TimeLeft(),
		Heading:      heading,
		HasTarget:    ok,
		Hint:         g.Hint(),
		HoldProgress: g.Input.DockHoldProgress(),
	}
	if g.GameState.Debug() {
		f.Debug = g.debugLines()
	}
	return f
}

func (g *Game) debugLines() []string {
	ship := g.ShipBody.Translation()
	crew := g.CharacterBody.Translation()
	lines := []string{
		fmt.Sprintf("frame %d  t=%.1fs", g.FrameCount, g.Scheduler.Now().Seconds()),
		fmt.Sprintf("ship  %.2f %.2f %.2f", ship.X(), ship.Y(), ship.Z()),
		fmt.Sprintf("crew  %.2f %.2f %.2f grounded=%t", crew.X(), crew.Y(), crew.Z(), g.CharacterBody.Grounded()),
		fmt.Sprintf("clip  %s (active %s)", g.Machine.Current(), g.Animator.ActiveClip()),
	}
	if anchor, ok := g.Binder.DockedAnchor(); ok {
		lines = append(lines, fmt.Sprintf("docked at %s", anchor.ID))
	}
	if g.Prediction.Active {
		lines = append(lines, fmt.Sprintf("launch %.1f u/s", g.Prediction.Velocity.Len()))
	}
	return lines
}
