package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DenizcanArslan/VDTMSv2-sub001/config"
	"github.com/DenizcanArslan/VDTMSv2-sub001/notify"
	"github.com/DenizcanArslan/VDTMSv2-sub001/plancache"
	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
	"github.com/DenizcanArslan/VDTMSv2-sub001/www"
)

var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "vdtms.yaml", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("vdtms", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	log.Printf("vdtms: database open (%s)", cfg.Database.Driver)

	// Planning service
	svc := planning.New(planning.Config{DB: db})

	// Redis plan cache
	var cache *plancache.Cache
	if cfg.Redis.Address != "" {
		c := plancache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, log.Printf)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Ping(ctx); err != nil {
			log.Printf("vdtms: redis not available (%v), running without plan cache", err)
			c.Close()
		} else {
			cache = c
			cache.Attach(svc.Events())
			defer cache.Close()
			log.Printf("vdtms: plan cache on redis (%s)", cfg.Redis.Address)
		}
		cancel()
	} else {
		log.Printf("vdtms: redis not configured, running without plan cache")
	}

	// Web server + SSE hub
	handler, hub, stopWeb := www.NewRouter(svc, cache)

	// Event fanout
	publishers := []notify.Publisher{hub}
	if cfg.Notify.PrimaryURL != "" {
		publishers = append(publishers, notify.NewWebhook(cfg.Notify.PrimaryURL, cfg.Notify.FallbackURL, cfg.Notify.Timeout, log.Printf))
	}
	if len(cfg.Messaging.Kafka.Brokers) > 0 {
		kp := notify.NewKafka(cfg.Messaging.Kafka.Brokers, cfg.Messaging.PlanningTopic)
		defer kp.Close()
		publishers = append(publishers, kp)
		log.Printf("vdtms: kafka fanout on %v", cfg.Messaging.Kafka.Brokers)
	}
	if cfg.Messaging.MQTT.Broker != "" {
		mp, err := notify.NewMQTT(cfg.Messaging.MQTT.Broker, cfg.Messaging.MQTT.ClientID, cfg.Messaging.PlanningTopic)
		if err != nil {
			log.Printf("vdtms: mqtt not available (%v), continuing without it", err)
		} else {
			defer mp.Close()
			publishers = append(publishers, mp)
			log.Printf("vdtms: mqtt fanout on %s", cfg.Messaging.MQTT.Broker)
		}
	}
	dispatcher := notify.NewDispatcher(log.Printf, publishers...)
	dispatcher.Attach(svc.Events())

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Printf("vdtms: web server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server: %v", err)
		}
	}()

	log.Printf("vdtms: ready")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Printf("vdtms: shutting down...")
	stopWeb()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	log.Printf("vdtms: stopped")
}
