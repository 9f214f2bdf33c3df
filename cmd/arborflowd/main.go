// Command arborflowd is a demo binary exercising the engine end to end:
// it listens for newline-delimited integers on stdin, lifts them
// through a configurable transform, and prints every tick to stdout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/arborflow/frp"
	"github.com/arborflow/frp/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "arborflowd",
		Usage: "run a small reactive topology over stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a TOML config file"},
			&cli.IntFlag{Name: "multiplier", Value: 2, Usage: "multiply every input line by this amount"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "if set, serve Prometheus metrics on this address"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	multiplier := c.Int("multiplier")
	lines := make(chan int)

	var printed *frp.Branch[int]
	topo, err := frp.Spawn(cfg, func(b *frp.Builder) {
		in := frp.Listen[int](b, 0, lines)
		out := frp.Lift[int, int](in, func(v int) int { return v * multiplier })
		printed = frp.Add[int](b, out)
		printed.Init()
	})
	if err != nil {
		return err
	}
	go printed.PushTo(frp.SinkFunc[int](func(e frp.Event[int]) {
		if v, ok := e.Value(); ok {
			fmt.Println(v)
		}
	}))

	if addr := c.String("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		for _, col := range topo.Stats.Collectors() {
			reg.MustRegister(col)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Info("serving metrics", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("metrics server exited", zap.Error(err))
			}
		}()
	}

	go readLines(os.Stdin, lines, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod())
	defer cancel()
	return topo.Shutdown(shutdownCtx)
}

func readLines(in *os.File, out chan<- int, log *zap.Logger) {
	defer close(out)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			log.Warn("skipping unparseable line", zap.String("line", scanner.Text()), zap.Error(err))
			continue
		}
		out <- v
	}
}
