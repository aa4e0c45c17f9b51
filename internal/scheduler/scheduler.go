package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"WagerArena/internal/engine"
	"WagerArena/internal/model"
	"WagerArena/internal/rejection"
	"WagerArena/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the engine clock from cron and serializes player commands
// against it.
type Scheduler struct {
	Cron           *cron.Cron
	Engine         *engine.Engine
	Output         func(string)
	NextRoundDelay int
	AutoStart      bool

	mu       sync.Mutex
	cooldown int
}

// NewScheduler creates a new Scheduler. out receives every message meant for
// the player.
func NewScheduler(eng *engine.Engine, out func(string), nextRoundDelay int, autoStart bool) *Scheduler {
	if out == nil {
		out = func(string) {}
	}
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Engine:         eng,
		Output:         out,
		NextRoundDelay: nextRoundDelay,
		AutoStart:      autoStart,
	}
}

// Register adds the round clock job.
func (s *Scheduler) Register(tickCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) tickTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Engine.Snapshot()
	if snap.Phase != model.PhaseActive {
		s.paceNextRound(snap)
		return
	}

	evt, err := s.Engine.Tick()
	if err != nil {
		log.Printf("[ERROR] tick: %v", err)
		return
	}
	if evt.Resolution != nil {
		s.Output(report.FormatResolution(*evt.Resolution))
		s.cooldown = s.NextRoundDelay
		return
	}
	if t := evt.Snapshot.TimeRemaining; t <= 3 || t%5 == 0 {
		s.Output(fmt.Sprintf("⏳ %ds left", t))
	}
}

// paceNextRound starts the next round once the cooldown has elapsed.
func (s *Scheduler) paceNextRound(snap model.RoundSnapshot) {
	if !s.AutoStart || snap.Over {
		return
	}
	if s.cooldown > 0 {
		s.cooldown--
		return
	}
	next, err := s.Engine.StartRound()
	if err != nil {
		log.Printf("[WARN] auto start: %v", err)
		return
	}
	s.Output(report.FormatSnapshot(next))
}

// HandleCommand processes a player command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return report.FormatHelp()
	}
	args := fields[1:]

	switch fields[0] {
	case "/start":
		snap, err := s.Engine.StartRound()
		if err != nil {
			return s.reply(err)
		}
		return report.FormatSnapshot(snap)

	case "/stage":
		if len(args) < 1 {
			return "Usage: /stage <stake> [choice] [confidence]"
		}
		w, err := s.parseWager(args[0], args[1:])
		if err != nil {
			return s.reply(err)
		}
		snap, err := s.Engine.StageWager(w)
		if err != nil {
			return s.reply(err)
		}
		return report.FormatSnapshot(snap)

	case "/bet":
		if len(args) < 2 {
			return "Usage: /bet <choice> <stake> [confidence]"
		}
		rest := append([]string{args[0]}, args[2:]...)
		w, err := s.parseWager(args[1], rest)
		if err != nil {
			return s.reply(err)
		}
		res, err := s.Engine.SubmitWager(w)
		if err != nil {
			return s.reply(err)
		}
		s.cooldown = s.NextRoundDelay
		return report.FormatResolution(res)

	case "/power":
		if len(args) != 1 {
			return "Usage: /power <id>"
		}
		acc, err := s.Engine.ActivatePowerUp(args[0])
		if err != nil {
			return s.reply(err)
		}
		return report.FormatAcceptance(acc)

	case "/status":
		snap := s.Engine.Snapshot()
		return report.FormatSnapshot(snap) + "\n" + report.FormatPowerUps(snap.PowerUps)

	case "/history":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		return report.FormatHistory(s.Engine.History(), n)

	case "/reset":
		initial := s.Engine.Reset()
		s.cooldown = s.NextRoundDelay
		return report.FormatInitial(initial)

	default:
		return report.FormatHelp()
	}
}

// parseWager reads a stake and optional [choice] [confidence] arguments.
func (s *Scheduler) parseWager(stakeArg string, rest []string) (model.Wager, error) {
	stake, err := strconv.ParseInt(stakeArg, 10, 64)
	if err != nil {
		return model.Wager{}, rejection.Validation(rejection.CodeUnparsableStake, fmt.Sprintf("stake %q is not a number", stakeArg))
	}
	w := model.Wager{Stake: stake, Confidence: 1}
	if len(rest) > 0 {
		sel, err := s.Engine.ParseSelection(rest[0])
		if err != nil {
			return model.Wager{}, err
		}
		w.Selection = sel
	}
	if len(rest) > 1 {
		c, err := strconv.Atoi(strings.TrimPrefix(rest[1], "x"))
		if err != nil {
			return model.Wager{}, rejection.Validation(rejection.CodeInvalidConfidence, fmt.Sprintf("confidence %q is not a number", rest[1]))
		}
		w.Confidence = c
	}
	return w, nil
}

func (s *Scheduler) reply(err error) string {
	if r, ok := rejection.As(err); ok {
		return "⚠️ " + r.Reason()
	}
	log.Printf("[ERROR] command failed: %v", err)
	return fmt.Sprintf("❌ internal error: %v", err)
}
