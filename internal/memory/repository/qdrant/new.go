package qdrant

import (
	"sync"

	"recall-assistant/internal/memory"
	"recall-assistant/internal/memory/repository"
	pkgLog "recall-assistant/pkg/log"
	pkgQdrant "recall-assistant/pkg/qdrant"
)

const (
	LogPrefixInit  = "internal.memory.repository.qdrant.init"
	LogPrefixWrite = "internal.memory.repository.qdrant.Write"
	LogPrefixQuery = "internal.memory.repository.qdrant.Query"
)

// Config names the collection and its logical partition.
type Config struct {
	CollectionName string
	VectorSize     int
	Namespace      string
}

type implRepository struct {
	client *pkgQdrant.Client
	cfg    Config
	l      pkgLog.Logger

	initOnce sync.Once
}

// New creates a Qdrant-backed memory repository. No network call happens until first use.
func New(client *pkgQdrant.Client, cfg Config, l pkgLog.Logger) repository.Repository {
	if cfg.Namespace == "" {
		cfg.Namespace = memory.DefaultNamespace
	}
	return &implRepository{
		client: client,
		cfg:    cfg,
		l:      l,
	}
}
