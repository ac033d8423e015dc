package identity

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"recall-assistant/internal/model"
)

// DefaultMachineIDPath is where systemd keeps the host id.
const DefaultMachineIDPath = "/etc/machine-id"

var ErrNoIdentity = errors.New("identity: no machine id or hostname available")

// installNamespace scopes the derived ids so they never collide with ids derived elsewhere from the same machine id.
var installNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("recall-assistant.local"))

// Config selects how the installation id is obtained.
type Config struct {
	// UserID, when set, is used as is.
	UserID        string
	MachineIDPath string
}

// Resolver produces the installation scope.
type Resolver struct {
	cfg      Config
	hostname func() (string, error)
	readFile func(string) ([]byte, error)
}

// New creates a Resolver reading the real host.
func New(cfg Config) *Resolver {
	if cfg.MachineIDPath == "" {
		cfg.MachineIDPath = DefaultMachineIDPath
	}
	return &Resolver{cfg: cfg, hostname: os.Hostname, readFile: os.ReadFile}
}

// Scope returns the stable scope of this installation.
func (r *Resolver) Scope() (model.Scope, error) {
	if id := strings.TrimSpace(r.cfg.UserID); id != "" {
		return model.Scope{UserID: id}, nil
	}

	seed, err := r.seed()
	if err != nil {
		return model.Scope{}, err
	}
	return model.Scope{UserID: uuid.NewSHA1(installNamespace, []byte(seed)).String()}, nil
}

func (r *Resolver) seed() (string, error) {
	if b, err := r.readFile(r.cfg.MachineIDPath); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return "machine:" + id, nil
		}
	}

	host, err := r.hostname()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoIdentity, err)
	}
	if host = strings.TrimSpace(host); host == "" {
		return "", ErrNoIdentity
	}
	return "host:" + host, nil
}
