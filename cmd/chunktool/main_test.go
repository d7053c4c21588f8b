package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Faultbox/blockgl/internal/voxel"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    voxel.ChunkCoord
		wantErr bool
	}{
		{"0,0,0", voxel.ChunkCoord{}, false},
		{"3,-1, 7", voxel.ChunkCoord{X: 3, Y: -1, Z: 7}, false},
		{"1,2", voxel.ChunkCoord{}, true},
		{"a,b,c", voxel.ChunkCoord{}, true},
		{"", voxel.ChunkCoord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCoord(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	got := walk(voxel.ChunkCoord{}, voxel.ChunkCoord{X: 4, Z: -2}, 4)
	want := []voxel.ChunkCoord{
		{X: 0, Z: 0},
		{X: 1, Z: -1},
		{X: 2, Z: -1},
		{X: 3, Z: -2},
		{X: 4, Z: -2},
	}
	if !slices.Equal(got, want) {
		t.Errorf("walk = %v, want %v", got, want)
	}

	single := walk(voxel.ChunkCoord{X: 5}, voxel.ChunkCoord{X: 5}, 1)
	if len(single) != 2 || single[0] != single[1] {
		t.Errorf("stationary walk = %v", single)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChunkBytes(t *testing.T) {
	// One face: 4 vertices of 36 bytes and 6 four-byte indices.
	if got := chunkBytes(4, 6); got != 168 {
		t.Errorf("chunkBytes = %d, want 168", got)
	}
}

func TestOptionsLoad(t *testing.T) {
	o := newOptions("test")
	cfg, err := o.load([]string{"-size", "8", "-radius", "2", "-generator", "flat", "-async", "1", "2", "3"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.World.ChunkSize != 8 || cfg.World.LoadRadius != 2 || cfg.World.Generator != "flat" || !cfg.World.Async {
		t.Errorf("world config = %+v", cfg.World)
	}
	if !slices.Equal(o.args, []string{"1", "2", "3"}) {
		t.Errorf("args = %v, want [1 2 3]", o.args)
	}

	if _, err := newOptions("test").load([]string{"-generator", "mountains"}); err == nil {
		t.Error("expected validation error for unknown generator")
	}
}

func TestOptionsNegativeCoordinates(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		seed int64
	}{
		{"separate", []string{"-1", "0", "-2"}, []string{"-1", "0", "-2"}, 0},
		{"triple", []string{"-1,0,-2"}, []string{"-1,0,-2"}, 0},
		{"flag value negative", []string{"-seed", "-5", "-1", "0", "3"}, []string{"-1", "0", "3"}, -5},
		{"flag after coordinates", []string{"-3,0,0", "4,0,0", "2", "-async"}, []string{"-3,0,0", "4,0,0", "2"}, 0},
		{"double dash", []string{"-seed=7", "--", "-1", "-1", "-1"}, []string{"-1", "-1", "-1"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOptions("test")
			cfg, err := o.load(tt.args)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !slices.Equal(o.args, tt.want) {
				t.Errorf("args = %v, want %v", o.args, tt.want)
			}
			if cfg.World.Seed != tt.seed {
				t.Errorf("seed = %d, want %d", cfg.World.Seed, tt.seed)
			}
		})
	}
}

func TestOptionsLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("world:\n  chunk_size: 4\n  load_radius: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := newOptions("test").load([]string{"-config", path, "-radius", "3"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.World.ChunkSize != 4 {
		t.Errorf("ChunkSize = %d, want 4 from file", cfg.World.ChunkSize)
	}
	if cfg.World.LoadRadius != 3 {
		t.Errorf("LoadRadius = %d, want flag override 3", cfg.World.LoadRadius)
	}
}
