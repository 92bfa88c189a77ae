// Command flowweb hosts the FlowWeb engine against a target process: it
// wires an event transport, an instruction counter backend, structured
// logging, and periodic critical-path reporting, then runs until
// SIGINT/SIGTERM.
//
// Usage:
//
//	flowweb <pid> [--window-ms N] [--weight instructions|time] [--report-hz N]
//
// The in-kernel futex probe is out of scope (spec.md §1): this host drains
// an in-process eventsource.Ring instead, which is where a real probe would
// publish decoded events. Nothing in this binary publishes into the ring,
// so without an attached probe it receives no events and emits no
// critical-path reports; it does not use the eventsource wire codec.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/flowweb/flowweb"
	"github.com/flowweb/flowweb/eventsource"
	"github.com/flowweb/flowweb/flowweblog"
	"github.com/flowweb/flowweb/instrcounter"
	"github.com/flowweb/flowweb/threadenum"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("flowweb", flag.ContinueOnError)
	windowMs := fs.Int64("window-ms", 1000, "retention window in milliseconds; 0 disables windowing")
	weightFlag := fs.String("weight", "time", "critical-path weight mode: \"time\" or \"instructions\"")
	reportHz := fs.Float64("report-hz", 1, "maximum rate, in reports per second, of periodic critical-path reports")
	ringCapacity := fs.Int("ring-capacity", 4096, "capacity of the event transport ring (must be a power of two)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: flowweb <pid> [flags]")
		return 2
	}
	pidArg := fs.Arg(0)
	// Parsing stops at the pid; flags that follow it are parsed here.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "usage: flowweb <pid> [flags]")
		return 2
	}
	var pid int
	if _, err := fmt.Sscanf(pidArg, "%d", &pid); err != nil {
		fmt.Fprintf(os.Stderr, "flowweb: invalid pid %q: %v\n", pidArg, err)
		return 2
	}
	if !processAlive(pid) {
		fmt.Fprintf(os.Stderr, "flowweb: target pid %d does not exist\n", pid)
		return 1
	}

	var weightMode flowweb.WeightMode
	switch *weightFlag {
	case "time":
		weightMode = flowweb.WeightTime
	case "instructions":
		weightMode = flowweb.WeightInstructions
	default:
		fmt.Fprintf(os.Stderr, "flowweb: unrecognized --weight %q (want \"time\" or \"instructions\")\n", *weightFlag)
		return 2
	}

	logger := stumpy.L.New(
		stumpy.L.WithStumpy(),
	)

	tids, err := threadenum.List(pid)
	if err != nil {
		logger.Warning().Err(err).Int("pid", pid).Log("could not enumerate threads; proceeding without a warm counter set")
	} else {
		logger.Debug().Int("pid", pid).Int("threads", len(tids)).Log("enumerated target threads")
	}

	var counter flowweb.InstructionCounter
	if weightMode == flowweb.WeightInstructions {
		counter = instrcounter.PerfCounter{}
	} else {
		counter = instrcounter.NullCounter{}
	}

	web := flowweb.New(
		flowweb.WithWindow(uint64(*windowMs)*uint64(time.Millisecond)),
		flowweb.WithWeightMode(weightMode),
		flowweb.WithCounterBackend(counter),
		flowweb.WithLogger(flowweblog.New(logger)),
	)

	ring, err := eventsource.NewRing(*ringCapacity)
	if err != nil {
		logger.Err().Err(err).Log("failed to construct event ring")
		return 1
	}

	limiter := catrate.NewLimiter(map[time.Duration]int{
		reportInterval(*reportHz): 1,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Int("pid", pid).Str("weight", *weightFlag).Int64("window_ms", *windowMs).Log("flowweb starting")

	done := make(chan struct{})
	go func() {
		defer close(done)
		pollTimeout := 50 * time.Millisecond
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			events, err := ring.Drain()
			if err != nil {
				logger.Err().Err(err).Log("ring drain failed")
				continue
			}
			for _, e := range events {
				web.ProcessEvent(e)
			}
			if len(events) == 0 {
				time.Sleep(pollTimeout)
				continue
			}
			if _, ok := limiter.Allow("report"); ok {
				reportCriticalPath(logger, web)
			}
		}
	}()

	<-ctx.Done()
	<-done

	metrics := web.Metrics()
	logger.Info().
		Int64("nodes_created", int64(metrics.NodesCreated)).
		Int64("nodes_pruned", int64(metrics.NodesPruned)).
		Int64("waits_claimed", int64(metrics.WaitsClaimed)).
		Int64("dropped_events", int64(ring.Dropped())).
		Log("flowweb stopped")

	return 0
}

// processAlive reports whether pid names a live process, by sending it the
// null signal per kill(2)'s documented existence-check idiom.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

func reportInterval(hz float64) time.Duration {
	if hz <= 0 {
		return time.Hour
	}
	return time.Duration(float64(time.Second) / hz)
}

func reportCriticalPath(logger *logiface.Logger[*stumpy.Event], web *flowweb.FlowWeb) {
	path, ok := web.Analyze()
	if !ok {
		return
	}
	b := logger.Info()
	for i, n := range path {
		b = b.Int64(fmt.Sprintf("tid%d", i), int64(n.Tid))
	}
	b.Int("hops", len(path)).Log("critical path report")
}
