// Publisher pushes a synthetic change notification onto the queue. It is
// an operational tool for poking a running dashboard without touching the
// hub: the dashboard should refetch its snapshot and notify its browser
// clients.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lomoval/famboard/internal/logger"
	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/rabbit"
	log "github.com/sirupsen/logrus"
)

var (
	configFile string
	kind       string
	eventID    string
	familyID   string
)

func init() {
	flag.StringVar(&configFile, "config", "./configs/publisher.yaml", "Path to configuration file")
	flag.StringVar(&kind, "kind", string(model.EventUpdated), "Notification kind")
	flag.StringVar(&eventID, "event-id", "", "Event identifier to reference")
	flag.StringVar(&familyID, "family-id", "", "Family identifier to reference")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

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

	n := model.Notification{
		ID:       uuid.NewString(),
		Kind:     model.NotificationKind(kind),
		EventID:  eventID,
		FamilyID: familyID,
		Time:     time.Now(),
	}
	if !n.Kind.Valid() {
		log.Errorf("unknown notification kind %q", kind)
		os.Exit(1)
	}

	r := rabbit.New(config.Rabbit)
	if err := r.Connect(); err != nil {
		log.Errorf("failed to connect to rabbit: %v", err)
		os.Exit(1)
	}
	defer r.Close()

	if err := r.Publish(n); err != nil {
		log.Errorf("failed to publish notification: %v", err)
		os.Exit(1)
	}
	log.Printf("published %s notification %s", n.Kind, n.ID)
}
