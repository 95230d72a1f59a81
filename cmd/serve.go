package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eirsyl/shardadvisor/cmd/utils"
	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/cache"
	"github.com/eirsyl/shardadvisor/pkg/runner"
	"github.com/eirsyl/shardadvisor/pkg/server"
	pkgutils "github.com/eirsyl/shardadvisor/pkg/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	bolt "go.etcd.io/bbolt"
)

func init() {
	runFlags(serveCmd)
	utils.StringConfig(serveCmd, "listen", "", pkg.DefaultDebugAddr, "debug server listen address")
	utils.DurationConfig(serveCmd, "every", "", pkg.DefaultServeEvery, "pause between two advisor runs")
	RootCmd.AddCommand(serveCmd)
}

// runServices runs every service until the first one returns.
func runServices(services ...pkg.Service) error {
	var errChan = make(chan error, len(services))
	for _, service := range services {
		go func(service pkg.Service) {
			errChan <- service.Run()
		}(service)
	}
	return <-errChan
}

// exitServices stops every service and collects the errors.
func exitServices(services ...pkg.Service) error {
	var errs []error
	for _, service := range services {
		if err := service.Exit(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("Shutdown issues: %v", errs)
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advisor periodically and serve the results",
	Long: `
Runs the advisor every --every and exports node utilization as prometheus
metrics. The last report is available as json on /suggestions.
`,
	PreRunE: utils.BindFlags,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			exitSig = make(chan os.Signal, 1)
		)

		signal.Notify(exitSig, syscall.SIGINT, os.Interrupt, syscall.SIGTERM)

		r, store, err := newRunner()
		if err != nil {
			log.Fatalf("Could not initialize advisor: %v", err)
		}

		loop, err := runner.NewLoop(r, viper.GetDuration("every"))
		if err != nil {
			log.Fatalf("Could not initialize advisor loop: %v", err)
		}

		var db *bolt.DB
		if boltStore, ok := store.(*cache.BoltStore); ok {
			db = boltStore.DB()
		}

		host, port := clusterAddr()
		httpServer, err := server.NewHTTPServer(viper.GetString("listen"), map[string]string{
			"cluster":  viper.GetString("cluster"),
			"address":  fmt.Sprintf("%s:%d", host, port),
			"method":   viper.GetString("method"),
			"every":    viper.GetDuration("every").String(),
			"interval": viper.GetDuration("interval").String(),
		}, loop, db)
		if err != nil {
			log.Fatalf("Could not initialize http server: %v", err)
		}

		// Exit
		go func() {
			s := <-exitSig
			log.Infof("Signal %s received, shutting down gracefully", s)
			go pkgutils.ForceExit(exitSig, 5*time.Second)
			if err := exitServices(loop, httpServer); err != nil {
				log.Fatalf("Could not gracefully exit: %v", err)
			}
		}()

		log.Infof("Starting http server on %s", httpServer.GetListenAddr())
		err = runServices(loop, httpServer)
		if store != nil {
			if cerr := store.Close(); cerr != nil {
				log.Warnf("Could not close sample cache: %v", cerr)
			}
		}
		if err != nil {
			log.Fatalf("Advisor exited unexpectedly: %v", err)
		}
	},
}
