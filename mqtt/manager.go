package mqtt

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.bug.st/serial"
	"go.uber.org/zap"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// Options configures the bridge.
type Options struct {
	BrokerURL string // e.g. tcp://localhost:1883
	ClientID  string // defaults to a random serialdevice-* id
	Prefix    string // topic root, DefaultPrefix when empty
	QoS       byte
}

// client is the slice of the MQTT client the manager drives. Narrowing the
// dependency keeps the manager testable against a fake broker.
type client interface {
	Connect() pahomqtt.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Subscribe(topic string, qos byte, callback pahomqtt.MessageHandler) pahomqtt.Token
}

// device is one open serial port together with its read pump.
type device struct {
	port     serial.Port
	settings Settings
	name     string
	done     chan struct{}
}

// Manager bridges serial ports onto MQTT. It publishes the visible ports
// and per-port status as retained messages, relays received bytes, and
// executes connect, close and send requests from clients.
type Manager struct {
	opts Options
	log  *zap.Logger

	client client

	mu      sync.Mutex
	devices map[string]*device // keyed by topic segment

	listPorts func() ([]serialdevice.PortDescriptor, error)
	openPort  func(name string, mode *serial.Mode, timeout time.Duration) (serial.Port, error)
}

// NewManager builds a Manager. It does not touch the broker until Start.
func NewManager(opts Options, log *zap.Logger) *Manager {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.ClientID == "" {
		opts.ClientID = "serialdevice-" + uuid.NewString()[:8]
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		opts:      opts,
		log:       log,
		devices:   make(map[string]*device),
		listPorts: serialdevice.ListPorts,
		openPort:  openSerialPort,
	}
}

func openSerialPort(name string, mode *serial.Mode, timeout time.Duration) (serial.Port, error) {
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// Start connects to the broker, subscribes to the bridge's request topics
// and publishes the initial port listing.
func (m *Manager) Start() error {
	if m.client == nil {
		copts := pahomqtt.NewClientOptions().
			AddBroker(m.opts.BrokerURL).
			SetClientID(m.opts.ClientID).
			SetAutoReconnect(true)
		m.client = pahomqtt.NewClient(copts)
	}

	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to broker %s: %w", m.opts.BrokerURL, token.Error())
	}
	if token := m.client.Subscribe(requestWildcard(m.opts.Prefix), m.opts.QoS, m.handleMessage); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", requestWildcard(m.opts.Prefix), token.Error())
	}

	m.log.Info("bridge started",
		zap.String("broker", m.opts.BrokerURL),
		zap.String("client_id", m.opts.ClientID),
		zap.String("prefix", m.opts.Prefix))

	m.publishComports()
	return nil
}

// Stop closes every open port, clears the bridge's retained topics and
// disconnects from the broker.
func (m *Manager) Stop() {
	if m.client == nil {
		return
	}

	m.mu.Lock()
	segments := make([]string, 0, len(m.devices))
	for segment := range m.devices {
		segments = append(segments, segment)
	}
	m.mu.Unlock()
	sort.Strings(segments)

	for _, segment := range segments {
		m.closeDevice(segment)
	}

	m.client.Publish(comportsTopic(m.opts.Prefix), m.opts.QoS, true, []byte{})
	m.client.Disconnect(250)
	m.log.Info("bridge stopped")
}

func (m *Manager) handleMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	segment, command, ok := parseRequest(m.opts.Prefix, msg.Topic())
	if !ok {
		return
	}

	switch command {
	case cmdRefreshComports:
		m.publishComports()
	case cmdConnect:
		m.handleConnect(segment, msg.Payload())
	case cmdClose:
		m.handleClose(segment)
	case cmdSend:
		m.handleSend(segment, msg.Payload())
	}
}

func (m *Manager) publishComports() {
	ports, err := m.listPorts()
	if err != nil {
		m.log.Error("listing ports", zap.Error(err))
		return
	}
	payload, err := comportsPayload(ports)
	if err != nil {
		m.log.Error("encoding comports", zap.Error(err))
		return
	}
	m.client.Publish(comportsTopic(m.opts.Prefix), m.opts.QoS, true, payload)
	m.log.Debug("published comports", zap.Int("count", len(ports)))
}

func (m *Manager) handleConnect(segment string, payload []byte) {
	settings, err := decodeSettings(payload)
	if err != nil {
		m.log.Warn("bad connect request", zap.String("port", segment), zap.Error(err))
		return
	}
	mode, err := settings.mode()
	if err != nil {
		m.log.Warn("bad connect settings", zap.String("port", segment), zap.Error(err))
		return
	}
	name := m.portName(segment)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, open := m.devices[segment]; open {
		m.log.Warn("port already connected", zap.String("port", name))
		return
	}

	port, err := m.openPort(name, mode, settings.readTimeout())
	if err != nil {
		m.log.Error("opening port", zap.String("port", name), zap.Error(err))
		return
	}

	dev := &device{port: port, settings: settings, name: name, done: make(chan struct{})}
	m.devices[segment] = dev
	m.publishStatus(segment, dev)
	go m.pump(segment, dev)

	m.log.Info("port connected",
		zap.String("port", name),
		zap.Int("baudrate", settings.Baudrate))
}

func (m *Manager) handleClose(segment string) {
	if closed := m.closeDevice(segment); !closed {
		m.log.Warn("close for unconnected port", zap.String("port", segment))
		return
	}
	m.log.Info("port closed", zap.String("port", segment))
}

func (m *Manager) handleSend(segment string, payload []byte) {
	m.mu.Lock()
	dev, ok := m.devices[segment]
	m.mu.Unlock()

	if !ok {
		m.log.Warn("send to unconnected port", zap.String("port", segment))
		return
	}
	if _, err := dev.port.Write(payload); err != nil {
		m.log.Error("write failed", zap.String("port", dev.name), zap.Error(err))
		return
	}
	m.log.Debug("sent", zap.String("port", dev.name), zap.Int("bytes", len(payload)))
}

// portName maps a topic segment back to the device name the host knows,
// falling back to the segment itself for ports not visible in a listing.
func (m *Manager) portName(segment string) string {
	ports, err := m.listPorts()
	if err == nil {
		for _, p := range ports {
			if PortSegment(p.Name) == segment {
				return p.Name
			}
		}
	}
	return segment
}

// pump relays bytes from the port to the received topic until the device is
// closed or the port fails.
func (m *Manager) pump(segment string, dev *device) {
	topic := receivedTopic(m.opts.Prefix, segment)
	buf := make([]byte, 1024)
	for {
		select {
		case <-dev.done:
			return
		default:
		}

		n, err := dev.port.Read(buf)
		if err != nil {
			select {
			case <-dev.done:
				// Closed on request; the read failing is expected.
				return
			default:
			}
			m.log.Warn("read failed, closing port", zap.String("port", dev.name), zap.Error(err))
			m.closeDevice(segment)
			return
		}
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			m.client.Publish(topic, m.opts.QoS, false, data)
		}
	}
}

// closeDevice tears one device down and clears its retained status. It
// reports whether the segment was connected.
func (m *Manager) closeDevice(segment string) bool {
	m.mu.Lock()
	dev, ok := m.devices[segment]
	if ok {
		delete(m.devices, segment)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}

	close(dev.done)
	dev.port.Close()
	m.client.Publish(statusTopic(m.opts.Prefix, segment), m.opts.QoS, true, []byte{})
	return true
}

func (m *Manager) publishStatus(segment string, dev *device) {
	payload, err := json.Marshal(newStatusPayload(dev.name, dev.settings))
	if err != nil {
		m.log.Error("encoding status", zap.Error(err))
		return
	}
	m.client.Publish(statusTopic(m.opts.Prefix, segment), m.opts.QoS, true, payload)
}
