package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/coffeecloud/internal/client/api"
	"github.com/iudanet/coffeecloud/internal/client/iocli"
	"github.com/iudanet/coffeecloud/internal/client/storage/boltdb"
)

// BuildInfo описывает версию, прошитую через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewRootCommand создает корневую команду coffeectl.
// Возвращаемая функция закрывает локальную БД, если она была открыта.
func NewRootCommand(info BuildInfo) (*cobra.Command, func() error) {
	var (
		serverURL string
		dbPath    string
		store     *boltdb.Storage
	)

	c := &Cli{io: iocli.NewStdio(), now: time.Now}
	root := newRoot(c)
	root.Version = info.Version
	root.SetVersionTemplate(fmt.Sprintf("Coffeectl\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		info.Version, info.BuildDate, info.GitCommit))

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	root.PersistentFlags().StringVar(&dbPath, "db", "coffeectl.db", "Path to local database")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		s, err := boltdb.New(cmd.Context(), dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		store = s

		c.connect(api.NewClient(serverURL), s, s)
		return nil
	}

	closeFn := func() error {
		if store == nil {
			return nil
		}
		return store.Close()
	}

	return root, closeFn
}

// newRoot собирает дерево команд поверх готового Cli
func newRoot(c *Cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "coffeectl",
		Short:         "Command line client for the coffeecloud ordering API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.io)

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		c.resetPasswordCmd(),
		c.healthCmd(),
		c.profileCmd(),
		c.userCmd(),
		c.menuCmd(),
		c.orderCmd(),
		c.serialCmd(),
	)

	return root
}
