// Package cli implements the coffeectl commands.
package cli

import (
	"time"

	"github.com/iudanet/coffeecloud/internal/client/api"
	"github.com/iudanet/coffeecloud/internal/client/auth"
	"github.com/iudanet/coffeecloud/internal/client/iocli"
	"github.com/iudanet/coffeecloud/internal/client/storage"
)

// Cli хранит зависимости команд
type Cli struct {
	apiClient *api.Client
	auth      auth.SessionManager
	authStore storage.AuthStorage
	menuCache storage.MenuCache
	io        iocli.IO
	now       func() time.Time
}

// New создает Cli
func New(apiClient *api.Client, authStore storage.AuthStorage, menuCache storage.MenuCache, io iocli.IO) *Cli {
	c := &Cli{io: io, now: time.Now}
	c.connect(apiClient, authStore, menuCache)
	return c
}

// connect подключает API клиент и локальное хранилище
func (c *Cli) connect(apiClient *api.Client, authStore storage.AuthStorage, menuCache storage.MenuCache) {
	c.apiClient = apiClient
	c.auth = auth.NewService(apiClient, authStore)
	c.authStore = authStore
	c.menuCache = menuCache
}
