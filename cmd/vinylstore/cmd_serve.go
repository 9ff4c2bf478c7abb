package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/app/routes"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/config"
	"github.com/groovecrate/vinylstore/internal/server"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/cache"
	"github.com/groovecrate/vinylstore/pkg/router"
	"github.com/groovecrate/vinylstore/pkg/session"
	"github.com/groovecrate/vinylstore/pkg/storage"
)

// vinylstore serve — boot the HTTP (and optional gRPC) server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the store server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return server.Run(cfg)
	},
}

// vinylstore route:list — print the registered routes without booting the
// real backends.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions := session.NewStore(cache.NewMemory(), session.DefaultOptions(time.Minute))
		authSvc := services.NewAuthService(
			repositories.NewMemoryAdminRepository(),
			sessions,
			auth.NewTokens("route-list", time.Minute),
		)
		catalog := services.NewCatalogService(repositories.NewMemoryProductRepository(), authSvc, nil)
		disk, err := storage.NewLocal(os.TempDir(), "")
		if err != nil {
			return err
		}

		r := router.New()
		if err := routes.Register(r, routes.Deps{Auth: authSvc, Catalog: catalog, Disk: disk}); err != nil {
			return err
		}

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
