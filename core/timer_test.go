package core

import "testing"

func TestDefaultTimerConfig(t *testing.T) {
	cfg := DefaultTimerConfig()

	if !cfg.Valid() {
		t.Fatal("default config should be valid")
	}
	// 401 * 1001 / 16MHz
	if got := cfg.PeriodUS(); got != 25087 {
		t.Errorf("PeriodUS() = %d, want 25087", got)
	}
	// 401 * 500 / 16MHz
	if got := cfg.CompareUS(); got != 12531 {
		t.Errorf("CompareUS() = %d, want 12531", got)
	}
}

func TestTimerConfigValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  TimerConfig
		want bool
	}{
		{"compare after period", TimerConfig{ClockHz: 1000, Reload: 10, Compare: 11}, false},
		{"compare at zero", TimerConfig{ClockHz: 1000, Reload: 10, Compare: 0}, false},
		{"no clock", TimerConfig{Reload: 10, Compare: 5}, false},
		{"compare at reload", TimerConfig{ClockHz: 1000, Reload: 10, Compare: 10}, true},
	}

	for _, tt := range tests {
		if got := tt.cfg.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTimerConfigForClock(t *testing.T) {
	cfg := DefaultTimerConfig().ForClock(84000000)

	if cfg.Prescaler != 2104 {
		t.Errorf("Prescaler = %d, want 2104", cfg.Prescaler)
	}
	if cfg.Reload != 1000 || cfg.Compare != 500 {
		t.Errorf("Reload/Compare changed: %d/%d", cfg.Reload, cfg.Compare)
	}
	if got := cfg.PeriodUS(); got != 25084 {
		t.Errorf("PeriodUS() = %d, want 25084", got)
	}

	same := DefaultTimerConfig().ForClock(TimerClockHz)
	if same != DefaultTimerConfig() {
		t.Errorf("ForClock(same clock) = %+v", same)
	}
}
