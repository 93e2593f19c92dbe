package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/ZamarianPatrick/mygarden-backend/graph"
	"github.com/ZamarianPatrick/mygarden-backend/tui"
)

const version = "0.1.0"

var logger = loggo.GetLogger("mygarden")

func main() {
	basePath := flag.String("base", "./", "directory holding the settings file and database")
	fake := flag.Bool("fake", false, "run the indicator on fake pins")
	terminal := flag.Bool("tui", false, "show the garden widget in this terminal")
	flag.Parse()

	if err := run(*basePath, *fake, *terminal); err != nil {
		logger.Errorf("%v", errors.ErrorStack(err))
		os.Exit(1)
	}
}

func run(basePath string, fake, terminal bool) error {
	if terminal {
		f, err := os.OpenFile(basePath+"mygarden.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Trace(err)
		}
		defer f.Close()
		if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(f, loggo.DefaultFormatter)); err != nil {
			return errors.Trace(err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	controller, err := graph.NewController(basePath, fake)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err := controller.Close(); err != nil {
			logger.Warningf("closing controller: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    controller.Settings().Listen,
		Handler: graph.NewResolver(version, controller).Router(),
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if terminal {
		id, err := uuid.NewUUID()
		if err != nil {
			return errors.Trace(err)
		}
		if err := tui.Run(tui.NewSurface(id.String()), controller.Queue(), controller.Activator()); err != nil {
			return errors.Trace(err)
		}
	} else {
		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil {
				return errors.Annotate(err, "serving http")
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Annotate(srv.Shutdown(shutdownCtx), "shutting down http")
}
