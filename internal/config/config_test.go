package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "netlens-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
capture:
  device: eth0
  snapshot_len: 1600
  promiscuous: true
  read_timeout: 100ms
dispatch:
  max_batch_size: 500
  max_buffer_time: 1s
sink:
  type: nats
  nats:
    url: nats://localhost:4222
    subject: traffic.batches
stats:
  writers:
    - type: gob
      enabled: true
      snapshot_interval: 30s
      gob:
        root_path: /tmp/stats
api:
  listen_addr: ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Capture.Device != "eth0" || cfg.Capture.SnapshotLen != 1600 || !cfg.Capture.Promiscuous {
		t.Errorf("Unexpected capture config: %+v", cfg.Capture)
	}
	if cfg.Dispatch.MaxBatchSize != 500 || cfg.Dispatch.MaxBufferTime != "1s" {
		t.Errorf("Unexpected dispatch config: %+v", cfg.Dispatch)
	}
	if cfg.Sink.Type != "nats" || cfg.Sink.NATS.URL != "nats://localhost:4222" {
		t.Errorf("Unexpected sink config: %+v", cfg.Sink)
	}
	if cfg.Sink.NATS.Subject != "traffic.batches" {
		t.Errorf("Unexpected subject: %s", cfg.Sink.NATS.Subject)
	}
	// Unset fields still receive defaults.
	if cfg.Sink.NATS.StatusSubject != "netlens.status" {
		t.Errorf("Expected default status subject, got %s", cfg.Sink.NATS.StatusSubject)
	}
	if len(cfg.Stats.Writers) != 1 || cfg.Stats.Writers[0].Gob.RootPath != "/tmp/stats" {
		t.Errorf("Unexpected stats config: %+v", cfg.Stats)
	}
	if cfg.API.ListenAddr != ":9090" {
		t.Errorf("Unexpected API config: %+v", cfg.API)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "capture:\n  device: eth0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Capture.SnapshotLen != 65536 {
		t.Errorf("Expected default snapshot length 65536, got %d", cfg.Capture.SnapshotLen)
	}
	if cfg.Capture.ReadTimeout != "50ms" {
		t.Errorf("Expected default read timeout 50ms, got %s", cfg.Capture.ReadTimeout)
	}
	if cfg.Dispatch.MaxBatchSize != 200 {
		t.Errorf("Expected default batch size 200, got %d", cfg.Dispatch.MaxBatchSize)
	}
	if cfg.Dispatch.MaxBufferTime != "300ms" {
		t.Errorf("Expected default buffer time 300ms, got %s", cfg.Dispatch.MaxBufferTime)
	}
	if cfg.Sink.Type != "log" {
		t.Errorf("Expected default sink type log, got %s", cfg.Sink.Type)
	}
	if cfg.API.ListenAddr != ":8080" {
		t.Errorf("Expected default listen address :8080, got %s", cfg.API.ListenAddr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "capture: [not: a: mapping\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
