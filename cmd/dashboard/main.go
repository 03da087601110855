package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lomoval/famboard/internal/app"
	"github.com/lomoval/famboard/internal/hubapi"
	"github.com/lomoval/famboard/internal/logger"
	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/rabbit"
	internalhttp "github.com/lomoval/famboard/internal/server/http"
	"github.com/lomoval/famboard/internal/snapshot"
	"github.com/lomoval/famboard/internal/ws"
	log "github.com/sirupsen/logrus"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/dashboard.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "version" {
		printVersion()
		return
	}

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	hubClient := hubapi.New(config.Hub)
	store := snapshot.NewStore()
	wsHub := ws.NewHub()
	refresher := snapshot.NewRefresher(config.Snapshot, hubClient, store, func(snap snapshot.Snapshot) {
		wsHub.Broadcast(ws.Notice{Refreshed: snap.FetchedAt})
	})

	dashboard := app.New(hubClient, store, refresher)
	server := internalhttp.NewServer(config.HTTPServer, dashboard, wsHub)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	go func() {
		if err := refresher.Run(ctx); err != nil {
			log.Errorf("snapshot refresher stopped: %v", err)
		}
	}()

	r := rabbit.New(config.Rabbit)
	if err := r.Connect(); err != nil {
		log.Errorf("failed to connect to rabbit, falling back to polling only: %v", err)
	} else {
		defer r.Close()
		go func() {
			err := r.Consume(ctx, func(n model.Notification) {
				log.WithField("kind", n.Kind).WithField("eventId", n.EventID).
					Debug("hub notification received")
				wsHub.Broadcast(ws.Notice{Kind: n.Kind, FamilyID: n.FamilyID, Refreshed: time.Now()})
				refresher.Invalidate()
			})
			if err != nil {
				log.Errorf("failed to consume notifications: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.Error("failed to stop http server: " + err.Error())
		}
	}()

	log.Info("dashboard is running...")

	if err := server.Start(ctx); err != nil {
		log.Error("failed to start http server: " + err.Error())
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
