package serialdevice

import (
	"errors"
	"testing"
	"time"

	"go.bug.st/serial"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", config.BaudRate)
	}
	if config.DataBits != 8 {
		t.Errorf("DataBits = %d, want 8", config.DataBits)
	}
	if config.StopBits != 1 {
		t.Errorf("StopBits = %d, want 1", config.StopBits)
	}
	if config.Parity != ParityNone {
		t.Errorf("Parity = %v, want ParityNone", config.Parity)
	}
	if config.ReadTimeout != 2500*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 2.5s", config.ReadTimeout)
	}
}

func TestWithBaudRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    int
		wantErr bool
	}{
		{"9600 (standard)", 9600, false},
		{"115200 (standard)", 115200, false},
		{"250000 (non-standard)", 250000, false},
		{"1 (degenerate but positive)", 1, false},
		{"0 (invalid)", 0, true},
		{"-9600 (negative)", -9600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithBaudRate(tt.rate)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithBaudRate(%d) error = %v, wantErr %v", tt.rate, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidBaudRate) {
				t.Errorf("WithBaudRate(%d) error = %v, want ErrInvalidBaudRate", tt.rate, err)
			}
			if err == nil && config.BaudRate != tt.rate {
				t.Errorf("BaudRate = %d, want %d", config.BaudRate, tt.rate)
			}
		})
	}
}

func TestWithDataBits(t *testing.T) {
	for _, bits := range []int{5, 6, 7, 8} {
		config := DefaultConfig()
		if err := WithDataBits(bits)(&config); err != nil {
			t.Errorf("WithDataBits(%d) error = %v, want nil", bits, err)
		}
		if config.DataBits != bits {
			t.Errorf("DataBits = %d, want %d", config.DataBits, bits)
		}
	}
	for _, bits := range []int{0, 4, 9, -8} {
		config := DefaultConfig()
		if err := WithDataBits(bits)(&config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("WithDataBits(%d) error = %v, want ErrInvalidConfig", bits, err)
		}
	}
}

func TestWithStopBits(t *testing.T) {
	for _, bits := range []int{1, 2} {
		config := DefaultConfig()
		if err := WithStopBits(bits)(&config); err != nil {
			t.Errorf("WithStopBits(%d) error = %v, want nil", bits, err)
		}
		if config.StopBits != bits {
			t.Errorf("StopBits = %d, want %d", config.StopBits, bits)
		}
	}
	for _, bits := range []int{0, 3, -1} {
		config := DefaultConfig()
		if err := WithStopBits(bits)(&config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("WithStopBits(%d) error = %v, want ErrInvalidConfig", bits, err)
		}
	}
}

func TestWithParity(t *testing.T) {
	for _, parity := range []Parity{ParityNone, ParityOdd, ParityEven, ParityMark, ParitySpace} {
		config := DefaultConfig()
		if err := WithParity(parity)(&config); err != nil {
			t.Errorf("WithParity(%v) error = %v, want nil", parity, err)
		}
		if config.Parity != parity {
			t.Errorf("Parity = %v, want %v", config.Parity, parity)
		}
	}

	config := DefaultConfig()
	if err := WithParity(Parity(42))(&config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("WithParity(42) error = %v, want ErrInvalidConfig", err)
	}
}

func TestWithReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"0 (block forever)", 0, false},
		{"100ms (valid)", 100 * time.Millisecond, false},
		{"2500ms (valid)", 2500 * time.Millisecond, false},
		{"1m (valid)", time.Minute, false},
		{"-100ms (negative)", -100 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithReadTimeout(tt.timeout)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithReadTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.ReadTimeout != tt.timeout {
				t.Errorf("ReadTimeout = %v, want %v", config.ReadTimeout, tt.timeout)
			}
		})
	}
}

func TestNewConfigStopsAtFirstBadOption(t *testing.T) {
	_, err := newConfig(WithBaudRate(9600), WithDataBits(12), WithStopBits(2))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("newConfig() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigMode(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantParity serial.Parity
		wantStop   serial.StopBits
	}{
		{
			name:       "defaults",
			config:     DefaultConfig(),
			wantParity: serial.NoParity,
			wantStop:   serial.OneStopBit,
		},
		{
			name:       "even parity",
			config:     Config{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: ParityEven},
			wantParity: serial.EvenParity,
			wantStop:   serial.OneStopBit,
		},
		{
			name:       "odd parity two stop bits",
			config:     Config{BaudRate: 9600, DataBits: 7, StopBits: 2, Parity: ParityOdd},
			wantParity: serial.OddParity,
			wantStop:   serial.TwoStopBits,
		},
		{
			name:       "mark parity",
			config:     Config{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: ParityMark},
			wantParity: serial.MarkParity,
			wantStop:   serial.OneStopBit,
		},
		{
			name:       "space parity",
			config:     Config{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: ParitySpace},
			wantParity: serial.SpaceParity,
			wantStop:   serial.OneStopBit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := tt.config.mode()
			if mode.BaudRate != tt.config.BaudRate {
				t.Errorf("mode.BaudRate = %d, want %d", mode.BaudRate, tt.config.BaudRate)
			}
			if mode.DataBits != tt.config.DataBits {
				t.Errorf("mode.DataBits = %d, want %d", mode.DataBits, tt.config.DataBits)
			}
			if mode.Parity != tt.wantParity {
				t.Errorf("mode.Parity = %v, want %v", mode.Parity, tt.wantParity)
			}
			if mode.StopBits != tt.wantStop {
				t.Errorf("mode.StopBits = %v, want %v", mode.StopBits, tt.wantStop)
			}
		})
	}
}

func TestParityString(t *testing.T) {
	tests := []struct {
		parity Parity
		want   string
	}{
		{ParityNone, "N"},
		{ParityOdd, "O"},
		{ParityEven, "E"},
		{ParityMark, "M"},
		{ParitySpace, "S"},
	}

	for _, tt := range tests {
		if got := tt.parity.String(); got != tt.want {
			t.Errorf("Parity(%d).String() = %q, want %q", tt.parity, got, tt.want)
		}
	}
}
