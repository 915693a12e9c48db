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
	"encoding/json"
	"fmt"

	"github.com/mdp/qrterminal/v3"
	"github.com/nuts-foundation/nuts-bankid/bankid"
	v1 "github.com/nuts-foundation/nuts-bankid/bankid/api/v1"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const outputFlag = "output"

// FlagSet contains flags relevant for the BankID module
func FlagSet() *pflag.FlagSet {
	defs := bankid.DefaultConfig()
	flagSet := pflag.NewFlagSet("bankid", pflag.ContinueOnError)
	flagSet.String("bankid.endpoint", defs.Endpoint, "Location of the service description (WSDL) of the BankID relying party service, "+
		"e.g. https://appapi2.test.bankid.com/rp/v4?wsdl. SOAP transport options can be set with bankid.options in the config file.")
	flagSet.Bool("bankid.enablessl", defs.EnableSSL, "Verify the certificate of the BankID service. Can't be disabled in strictmode.")
	flagSet.String("bankid.tls.certfile", defs.TLS.CertFile, "PEM file containing the client certificate for connecting to the BankID service.")
	flagSet.String("bankid.tls.certkeyfile", defs.TLS.CertKeyFile, "PEM file containing the private key of the client certificate.")
	flagSet.String("bankid.tls.truststorefile", defs.TLS.TrustStoreFile, "PEM file containing the CA certificates trusted for the BankID service. "+
		"When not set, the system roots are used.")
	return flagSet
}

// Cmd contains sub-commands for the remote client
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bankid",
		Short: "BankID sign and authentication commands",
	}
	cmd.PersistentFlags().StringP(outputFlag, "o", "json", "Output format (json, yaml)")
	cmd.AddCommand(signCommand())
	cmd.AddCommand(authCommand())
	cmd.AddCommand(collectCommand())
	return cmd
}

func signCommand() *cobra.Command {
	var showQR bool
	cmd := &cobra.Command{
		Use:   "sign [personalNumber] [text]",
		Short: "Starts a sign order, the text is shown to the user in the BankID app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := httpClient(cmd.Flags())
			if err != nil {
				return err
			}
			handle, err := client.Sign(args[0], args[1])
			if err != nil {
				return fmt.Errorf("unable to start sign order: %w", err)
			}
			return printOrder(cmd, *handle, showQR)
		},
	}
	cmd.Flags().BoolVar(&showQR, "qr", false, "Print a QR code that starts the BankID app for the order")
	return cmd
}

func authCommand() *cobra.Command {
	var showQR bool
	cmd := &cobra.Command{
		Use:   "auth [personalNumber]",
		Short: "Starts an authentication order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := httpClient(cmd.Flags())
			if err != nil {
				return err
			}
			handle, err := client.Authenticate(args[0])
			if err != nil {
				return fmt.Errorf("unable to start authentication order: %w", err)
			}
			if handle == nil {
				cmd.PrintErrln("No order was started, check the server log for details")
				return nil
			}
			return printOrder(cmd, *handle, showQR)
		},
	}
	cmd.Flags().BoolVar(&showQR, "qr", false, "Print a QR code that starts the BankID app for the order")
	return cmd
}

func collectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect [orderRef]",
		Short: "Prints the state of an order, including the user info and signature when it's complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := httpClient(cmd.Flags())
			if err != nil {
				return err
			}
			result, err := client.Collect(args[0])
			if err != nil {
				return fmt.Errorf("unable to collect order: %w", err)
			}
			if result == nil {
				cmd.PrintErrln("The state of the order couldn't be retrieved, check the server log for details")
				return nil
			}
			return printResult(cmd, result)
		},
	}
}

func printOrder(cmd *cobra.Command, handle v1.OrderResponse, showQR bool) error {
	if err := printResult(cmd, handle); err != nil {
		return err
	}
	if showQR {
		qrterminal.GenerateWithConfig(handle.AutoStartURL(), qrterminal.Config{
			HalfBlocks: false,
			BlackChar:  qrterminal.WHITE,
			WhiteChar:  qrterminal.BLACK,
			Level:      qrterminal.M,
			Writer:     cmd.OutOrStdout(),
			QuietZone:  1,
		})
	}
	return nil
}

func printResult(cmd *cobra.Command, value interface{}) error {
	format, _ := cmd.Flags().GetString(outputFlag)
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(value, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(value)
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

// httpClient creates a remote client
func httpClient(set *pflag.FlagSet) (v1.HTTPClient, error) {
	config := core.NewClientConfig()
	if err := config.Load(set); err != nil {
		return v1.HTTPClient{}, err
	}
	return v1.HTTPClient{
		ServerAddress: config.GetAddress(),
		Timeout:       config.Timeout,
	}, nil
}
