/*
 * Nuts BankID client
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nuts-foundation/nuts-bankid/bankid"
	bankidAPI "github.com/nuts-foundation/nuts-bankid/bankid/api/v1"
	bankidCmd "github.com/nuts-foundation/nuts-bankid/bankid/cmd"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

const shutdownTimeout = 5 * time.Second

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nuts-bankid",
		Short: "Nuts BankID executable which can be used to run the BankID server or call a running server.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(core.BuildInfo())
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the BankID server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			logrus.Info("Starting server with config:")
			logrus.Info(system.Config.PrintConfig())
			return startServer(cmd.Context(), system)
		},
	}
}

func startServer(ctx context.Context, system *core.System) error {
	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}

	// start engines
	if err := system.Start(); err != nil {
		return err
	}

	// start interfaces
	echoServer, err := system.EchoCreator(system.Config.HTTP)
	if err != nil {
		return err
	}
	for _, router := range system.Routers {
		router.Routes(echoServer)
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- echoServer.Start(system.Config.HTTP.Address)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := echoServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Unable to shut down HTTP server")
		}
		cancel()
		err = <-serverErr
	case err = <-serverErr:
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if shutdownErr := system.Shutdown(); shutdownErr != nil {
		return errors.Join(err, shutdownErr)
	}
	return err
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	return command
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()
	// Create instances
	bankidModule := bankid.NewModule()

	// Register HTTP routes
	system.RegisterRoutes(&bankidAPI.Wrapper{Client: bankidModule})

	// Register engines
	statusEngine := core.NewStatusEngine(system)
	metricsEngine := core.NewMetricsEngine()
	system.RegisterEngine(statusEngine)
	system.RegisterEngine(metricsEngine)
	system.RegisterEngine(bankidModule)
	for _, engine := range []core.Engine{statusEngine, metricsEngine} {
		if router, ok := engine.(core.Routable); ok {
			system.RegisterRoutes(router)
		}
	}
	return system
}

// Execute executes the root command, which is cancelled when the given context is.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	return command.ExecuteContext(ctx)
}

func addSubCommands(system *core.System, root *cobra.Command) {
	serverFlags := serverFlagSet()

	// server commands
	serverCommands := []*cobra.Command{
		createServerCommand(system),
		createPrintConfigCommand(system),
	}
	for _, serverCommand := range serverCommands {
		serverCommand.Flags().AddFlagSet(serverFlags)
		root.AddCommand(serverCommand)
	}

	// client commands
	clientFlags := core.ClientConfigFlags()
	clientCommands := []*cobra.Command{
		bankidCmd.Cmd(),
	}
	for _, clientCommand := range clientCommands {
		clientCommand.PersistentFlags().AddFlagSet(clientFlags)
		root.AddCommand(clientCommand)
	}

	root.AddCommand(createVersionCommand())
}

func serverFlagSet() *pflag.FlagSet {
	flagSet := core.FlagSet()
	flagSet.AddFlagSet(bankidCmd.FlagSet())
	return flagSet
}
