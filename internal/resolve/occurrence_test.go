package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeep(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{
			name: "cmp on code section",
			line: ".text.1:71004F00\tsub_71004E00\tCMP W8, #0x1A",
			want: true,
		},
		{
			name: "mov on code section",
			line: ".text.1:71004F04\tsub_71004E00\tMOV W0, #0x1A",
			want: true,
		},
		{
			name: "wrong section",
			line: ".data:71104F00\tsub_71004E00\tCMP W8, #0x1A",
			want: false,
		},
		{
			name: "branch instruction dropped",
			line: ".text.1:71004F08\tsub_71004E00\tBL sub_71004000",
			want: false,
		},
		{
			name: "mnemonic requires trailing space",
			line: ".text.1:71004F0C\tsub_71004E00\tMOVK W8, #5",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Keep(tt.line); got != tt.want {
				t.Errorf("Keep(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitOccurrence(t *testing.T) {
	occ, err := SplitOccurrence(".text.1:71004F00\tsub_71004E00\tCMP W8, #0x1A")
	if err != nil {
		t.Fatalf("SplitOccurrence: %v", err)
	}
	want := RawOccurrence{
		Addr:        ".text.1:71004F00",
		Func:        "sub_71004E00",
		Instruction: "CMP W8, #0x1A",
	}
	if occ != want {
		t.Errorf("SplitOccurrence = %+v, want %+v", occ, want)
	}

	if _, err := SplitOccurrence(".text.1:71004F00\tsub_71004E00"); !errors.Is(err, ErrFormat) {
		t.Errorf("two-field line: err = %v, want ErrFormat", err)
	}
}

func TestNormalizeAddr(t *testing.T) {
	cfg := Default()

	got, err := cfg.NormalizeAddr(".text.1:71004F00")
	if err != nil {
		t.Fatalf("NormalizeAddr: %v", err)
	}
	if got != "004F00" {
		t.Errorf("NormalizeAddr = %q, want %q", got, "004F00")
	}

	// Idempotence: the normalized form carries no further marker, so a
	// second application must fail to find one rather than split again.
	if strings.Contains(got, cfg.BaseMarker) {
		t.Fatalf("normalized address %q still contains marker %q", got, cfg.BaseMarker)
	}
	if _, err := cfg.NormalizeAddr(got); !errors.Is(err, ErrFormat) {
		t.Errorf("re-normalizing %q: err = %v, want ErrFormat", got, err)
	}

	if _, err := cfg.NormalizeAddr(".text.1:004F00"); !errors.Is(err, ErrFormat) {
		t.Errorf("marker-less address: err = %v, want ErrFormat", err)
	}
}

func TestBlacklisted(t *testing.T) {
	cfg := Default()

	tests := []struct {
		label string
		want  bool
	}{
		{"SaveData::Load", true},
		{"SceneResult$$Update", true},
		{"sub_7101234", true}, // unresolved fallbacks stay out of the patch list
		{"MusicSelect::GetMusicID", false},
		{"Foo::Bar", false},
	}

	for _, tt := range tests {
		if got := cfg.Blacklisted(tt.label); got != tt.want {
			t.Errorf("Blacklisted(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestRecord(t *testing.T) {
	ri := ResolvedInstruction{Addr: "AA", Label: "Foo::Bar", Instruction: "MOV R0, R1"}
	if got, want := ri.Record(), "0xAA\tFoo::Bar\tMOV R0, R1"; got != want {
		t.Errorf("Record = %q, want %q", got, want)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(`{"windowCap": 80, "sectionMarker": ".text.2"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WindowCap != 80 {
		t.Errorf("WindowCap = %d, want 80", cfg.WindowCap)
	}
	if cfg.SectionMarker != ".text.2" {
		t.Errorf("SectionMarker = %q, want %q", cfg.SectionMarker, ".text.2")
	}
	// Untouched fields keep their defaults.
	if cfg.BaseMarker != "71" || cfg.InitialWindow != 5 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty base marker", func(c *Config) { c.BaseMarker = "" }, false},
		{"zero window", func(c *Config) { c.InitialWindow = 0 }, false},
		{"cap below window", func(c *Config) { c.WindowCap = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.ok && err != nil {
				t.Errorf("validate: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("validate: expected error")
			}
		})
	}
}
