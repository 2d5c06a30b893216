package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress     string
		readLatencyMS  int
		writeLatencyMS int
		capTotal       bool
		seedPoint      string
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				runAddress:     "localhost:8080",
				readLatencyMS:  200,
				writeLatencyMS: 300,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":      "localhost:9999",
				"READ_LATENCY_MS":  "50",
				"WRITE_LATENCY_MS": "70",
				"CAP_TOTAL":        "true",
				"SEED_POINT":       "1:100",
			},
			flags: []string{},
			want: want{
				runAddress:     "localhost:9999",
				readLatencyMS:  50,
				writeLatencyMS: 70,
				capTotal:       true,
				seedPoint:      "1:100",
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-r", "10",
				"-w", "20",
				"-c",
				"-s", "2:500",
			},
			want: want{
				runAddress:     "localhost:7777",
				readLatencyMS:  10,
				writeLatencyMS: 20,
				capTotal:       true,
				seedPoint:      "2:500",
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS":     "env:9000",
				"READ_LATENCY_MS": "5",
			},
			flags: []string{
				"-a", "flag:8000",
				"-r", "100",
			},
			want: want{
				runAddress:     "env:9000",
				readLatencyMS:  5,
				writeLatencyMS: 300,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.readLatencyMS, cfg.ReadLatencyMS)
			assert.Equal(t, tt.want.writeLatencyMS, cfg.WriteLatencyMS)
			assert.Equal(t, tt.want.capTotal, cfg.CapTotal)
			assert.Equal(t, tt.want.seedPoint, cfg.SeedPoint)
		})
	}
}

func TestSeed(t *testing.T) {
	tests := []struct {
		name      string
		seedPoint string
		wantID    int64
		wantPoint int64
		wantOK    bool
		wantErr   bool
	}{
		{name: "empty disables seeding", seedPoint: ""},
		{name: "valid", seedPoint: "1:100", wantID: 1, wantPoint: 100, wantOK: true},
		{name: "missing separator", seedPoint: "100", wantErr: true},
		{name: "non-numeric id", seedPoint: "x:100", wantErr: true},
		{name: "zero id", seedPoint: "0:100", wantErr: true},
		{name: "negative point", seedPoint: "1:-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SeedPoint: tt.seedPoint}

			id, point, ok, err := cfg.Seed()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantPoint, point)
		})
	}
}
