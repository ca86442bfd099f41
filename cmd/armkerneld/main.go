// Command armkerneld runs the mobile arm simulation kernel: a Robot driven
// by a fixed-step controller and broadcaster, exposed over a websocket hub.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.viam.com/rdk/logging"

	"armkernel/control"
	"armkernel/transport"
)

const shutdownGrace = 5 * time.Second

func main() {
	bindAddr := flag.String("addr", ":8080", "address to bind the websocket hub on")
	configPath := flag.String("config", "", "path to a JSON config file (optional, defaults used if empty)")
	flag.Parse()

	logger := logging.NewLogger("armkerneld")

	cfg := control.DefaultConfig()
	if *configPath != "" {
		loaded, err := control.LoadConfigFile(*configPath)
		if err != nil {
			logger.Errorf("failed to load config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cancelCtx, cancelFunc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelFunc()

	robot := control.NewRobot()
	hub := transport.NewHub(robot, logger)
	controller := control.NewController(robot, cfg, logger)
	broadcaster := control.NewBroadcaster(robot, hub, cfg, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		controller.Run(cancelCtx)
	}()
	go func() {
		defer wg.Done()
		broadcaster.Run(cancelCtx)
	}()

	server := &http.Server{Addr: *bindAddr, Handler: hub}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Infof("websocket hub listening on %s", *bindAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("hub server error: %v", err)
			cancelFunc()
		}
	}()

	<-cancelCtx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("hub server shutdown error: %v", err)
	}

	wg.Wait()
	logger.Info("armkerneld exited cleanly")
}
