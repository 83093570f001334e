package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"NetLens/internal/capture"
	"NetLens/internal/config"
	"NetLens/internal/model"
	"NetLens/internal/sink"
	"NetLens/internal/stats"
)

func main() {
	mode := flag.String("mode", "capture", "Operating mode: 'capture' to capture and publish, 'watch' to subscribe and print.")
	iface := flag.String("iface", "", "Interface to capture from (required for capture mode unless set in config).")
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	list := flag.Bool("list", false, "List available capture devices and exit.")
	flag.Parse()

	if *list {
		listDevices()
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch *mode {
	case "capture":
		runCapture(cfg, *iface)
	case "watch":
		runWatcher(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

// listDevices prints every capturable interface on this host.
func listDevices() {
	devices, err := capture.ListDevices()
	if err != nil {
		log.Fatalf("Failed to list devices: %v", err)
	}
	if len(devices) == 0 {
		fmt.Println("No capture devices found.")
		return
	}
	for _, dev := range devices {
		fmt.Println(dev)
	}
}

// runCapture starts a live capture session and delivers batches to the
// configured sink until interrupted.
func runCapture(cfg *config.Config, iface string) {
	if iface == "" {
		iface = cfg.Capture.Device
	}
	if iface == "" {
		log.Fatal("No capture device: pass -iface or set capture.device in the config.")
	}

	var consumer model.Sink
	var natsSink *sink.NATSSink
	var channelSink *sink.ChannelSink
	var err error

	switch cfg.Sink.Type {
	case "nats":
		natsSink, err = sink.NewNATSSink(cfg.Sink.NATS)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsSink.Close()
		consumer = natsSink
	case "log":
		channelSink = sink.NewChannelSink(0)
		go logBatches(channelSink)
		consumer = channelSink
	default:
		log.Fatalf("Unknown sink type %q in config.", cfg.Sink.Type)
	}

	session, err := capture.NewSession(cfg, consumer, nil)
	if err != nil {
		log.Fatalf("Failed to create capture session: %v", err)
	}
	if err := session.Start(iface); err != nil {
		log.Fatalf("Failed to start capture: %v", err)
	}
	log.Printf("Capture started on %s (state: %s)", session.Device(), session.State())

	recorder := stats.NewRecorder(session.Aggregator(), stats.BuildWriters(cfg.Stats))
	recorder.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping capture...")
	session.Stop()
	recorder.Stop()

	snapshot := session.Aggregator().Snapshot()
	log.Printf("Final stats: %d bytes total across %d protocols", snapshot.TotalBytes, len(snapshot.ProtocolCounts))
}

// logBatches is the in-process consumer for the "log" sink: it prints
// every batch and status message on its own goroutine.
func logBatches(cs *sink.ChannelSink) {
	for {
		select {
		case batch := <-cs.Batches():
			for _, rec := range batch {
				log.Printf("%s %s:%d -> %s:%d %s len=%d %s",
					rec.Timestamp.Format("15:04:05.000"),
					rec.SrcAddr, rec.SrcPort, rec.DstAddr, rec.DstPort,
					rec.Protocol, rec.Length, rec.ProtocolDetail)
			}
		case msg := <-cs.Status():
			log.Printf("status: %s", msg)
		}
	}
}

// runWatcher subscribes to the NATS subjects and prints everything it
// receives.
func runWatcher(cfg *config.Config) {
	log.Println("Starting nl-probe in WATCH mode...")

	sub, err := sink.NewSubscriber(cfg.Sink.NATS)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	defer sub.Close()

	batchHandler := func(records []model.Record) {
		log.Printf("Received batch of %d records", len(records))
		for _, rec := range records {
			log.Printf("  %s %s:%d -> %s:%d len=%d %s",
				rec.Protocol, rec.SrcAddr, rec.SrcPort,
				rec.DstAddr, rec.DstPort, rec.Length, rec.ProtocolDetail)
		}
	}
	statusHandler := func(message string) {
		log.Printf("Status: %s", message)
	}

	if err := sub.Start(batchHandler, statusHandler); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}
