package elements

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wanmail/selenium-elements/internal/fakewd"
)

func TestLoadConfigFile(t *testing.T) {
	c, err := LoadConfigFile("testdata/elements.yaml")
	if err != nil {
		t.Fatalf("LoadConfigFile() returned error: %v", err)
	}
	off := false
	want := &Config{
		ReadinessScript:    "return window.pendingRequests === 0",
		ReadinessTimeout:   5 * time.Second,
		AutoScrollIntoView: &off,
		WaitTimeout:        20 * time.Second,
		PollInterval:       250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("LoadConfigFile() returned diff (-want +got):\n%s", diff)
	}

	cfg, err := newRemoteConfig(c.RemoteOptions()...)
	if err != nil {
		t.Fatalf("newRemoteConfig() returned error: %v", err)
	}
	wantCfg := remoteConfig{
		readinessScript:  "return window.pendingRequests === 0",
		readinessTimeout: 5 * time.Second,
		autoScroll:       false,
	}
	if diff := cmp.Diff(wantCfg, cfg, cmp.AllowUnexported(remoteConfig{})); diff != "" {
		t.Errorf("RemoteOptions() returned diff (-want +got):\n%s", diff)
	}

	f := c.Finder(&fakewd.Driver{})
	if f.Timeout != 20*time.Second || f.Interval != 250*time.Millisecond {
		t.Errorf("Finder() timeout, interval = %v, %v, want 20s, 250ms", f.Timeout, f.Interval)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		desc    string
		in      string
		want    *Config
		wantErr bool
	}{
		{"empty", "", &Config{}, false},
		{"partial", "wait_timeout: 1m\n", &Config{WaitTimeout: time.Minute}, false},
		{"unknown key", "readiness: x\n", nil, true},
		{"bad duration", "poll_interval: soon\n", nil, true},
		{"negative duration", "readiness_timeout: -1s\n", nil, true},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := LoadConfig(strings.NewReader(test.in))
			if (err != nil) != test.wantErr {
				t.Fatalf("LoadConfig(%q) error = %v, want error: %t", test.in, err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("LoadConfig(%q) returned diff (-want +got):\n%s", test.in, diff)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	if opts := c.RemoteOptions(); len(opts) != 0 {
		t.Errorf("RemoteOptions() of an empty config returned %d options, want 0", len(opts))
	}
	wd, err := c.Install(&fakewd.Driver{})
	if err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}
	if wd == nil {
		t.Fatal("Install() returned nil driver")
	}
	if _, err := LoadConfigFile("testdata/missing.yaml"); err == nil {
		t.Error("LoadConfigFile() of a missing file returned nil error")
	}
}
