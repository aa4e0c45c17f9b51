package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"WagerArena/internal/config"
	"WagerArena/internal/engine"
	"WagerArena/internal/random"
	"WagerArena/internal/recorder"
	"WagerArena/internal/report"
	"WagerArena/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] WagerArena starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init random source
	src := random.Default()
	if cfg.Game.Seed != 0 {
		src = random.NewSeeded(cfg.Game.Seed)
		log.Printf("[INFO] using seeded random source (seed %d)", cfg.Game.Seed)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init engine
	eng, err := engine.New(cfg.Engine(), src, rec)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	log.Printf("[INFO] %s mode, session %s, balance %d", eng.Mode(), eng.Session(), eng.Balance())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := func(msg string) { fmt.Println(msg) }

	// Init scheduler
	sched := scheduler.NewScheduler(eng, out, cfg.RoundDelay(), cfg.Schedule.AutoStart)
	if err := sched.Register(cfg.Schedule.TickCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Read commands from stdin
	go readCommands(ctx, sched, out)
	out(report.FormatHelp())

	log.Println("[INFO] WagerArena is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] WagerArena stopped")
}

func readCommands(ctx context.Context, sched *scheduler.Scheduler, out func(string)) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if reply := sched.HandleCommand(scanner.Text()); reply != "" {
			out(reply)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[ERROR] read stdin: %v", err)
	}
}
