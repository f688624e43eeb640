package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Root != "Main" {
		t.Errorf("Expected default root Main, got %s", cfg.Root)
	}
	if cfg.ProgramsDir != "programs" {
		t.Errorf("Expected default programs-dir programs, got %s", cfg.ProgramsDir)
	}
	if cfg.Mode != "official" {
		t.Errorf("Expected default mode official, got %s", cfg.Mode)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Strict || cfg.ScanRootOnly || cfg.DryRun {
		t.Error("Expected boolean switches to default to false")
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("root", "Main", "")
	fs.String("mode", "official", "")
	fs.Bool("strict", false, "")

	if err := fs.Parse([]string{"--root", "MotorCtrl", "--mode", "draft", "--strict"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Root != "MotorCtrl" {
		t.Errorf("Expected root MotorCtrl, got %s", cfg.Root)
	}
	if cfg.Mode != "draft" {
		t.Errorf("Expected mode draft, got %s", cfg.Mode)
	}
	if !cfg.Strict {
		t.Error("Expected strict to be set")
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SATTLINT_PROGRAMS_DIR", "plc/programs")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProgramsDir != "plc/programs" {
		t.Errorf("Expected programs-dir from env, got %s", cfg.ProgramsDir)
	}
}

func TestLibDirsSplitting(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"libs", []string{"libs"}},
		{"libs1,libs2", []string{"libs1", "libs2"}},
		{" libs1 , libs2 ", []string{"libs1", "libs2"}},
		{"libs1,,libs2", []string{"libs1", "libs2"}},
		{"", nil},
	}
	for _, tt := range tests {
		cfg := &Config{LibsDirs: tt.in}
		got := cfg.LibDirs()
		if len(got) != len(tt.want) {
			t.Errorf("LibDirs(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("LibDirs(%q)[%d] = %s, want %s", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
