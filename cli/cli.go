// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface: an interactive SQL
// shell, fixture seeding, and snapshot export/import, all running against
// an in-process client.Client rather than a network connection.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmosfake/cosmosfake/client"
	"github.com/cosmosfake/cosmosfake/cnf"
	"github.com/cosmosfake/cosmosfake/log"
)

var opts *cnf.Options

var cli *client.Client

var auth *masterAuth

var requireLogin bool

var mainCmd = &cobra.Command{
	Use:   "cosmosfake",
	Short: "An in-process document-database fake with a SQL-style query dialect",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		log.SetLevel(opts.Logging.Level)
		log.SetOutput(opts.Logging.Output)
		log.SetFormat(opts.Logging.Format)
		cli = client.NewClientWithKey(opts, opts.Auth.Auth)
		auth, err = newMasterAuth(opts.Auth.Auth)
		if err != nil {
			return err
		}
		if requireLogin {
			return promptLogin(auth)
		}
		return nil
	},
}

func init() {

	opts = cnf.Defaults()

	mainCmd.AddCommand(
		sqlCmd,
		seedCmd,
		exportCmd,
		importCmd,
		versionCmd,
	)

	mainCmd.PersistentFlags().StringVarP(&opts.Auth.Auth, "auth", "a", "root:root", "Master authentication details, in user:pass format")
	mainCmd.PersistentFlags().StringVar(&opts.DB.PartitionKey, "partition-key", opts.DB.PartitionKey, "Default partition-key path for new containers")
	mainCmd.PersistentFlags().IntVar(&opts.DB.PageSize, "page-size", opts.DB.PageSize, "Default page size when a query does not specify one")
	mainCmd.PersistentFlags().StringVarP(&opts.Logging.Level, "log", "l", opts.Logging.Level, "Log level: debug, info, warn, error")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Output, "log-output", opts.Logging.Output, "Log output: stdout, stderr, none")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Format, "log-format", opts.Logging.Format, "Log format: text, json")
	mainCmd.PersistentFlags().BoolVar(&requireLogin, "require-login", false, "Prompt for the auth password before running a command")

}

// Run runs the cli app.
func Run() {
	if err := mainCmd.Execute(); err != nil {
		log.Fatalln(err)
		os.Exit(1)
	}
}
