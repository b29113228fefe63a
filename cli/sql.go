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

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmosfake/cosmosfake/client"
	"github.com/cosmosfake/cosmosfake/log"
)

var sqlDatabase string
var sqlContainer string

var sqlCmd = &cobra.Command{
	Use:     "sql [flags] [query]",
	Short:   "Run a query, or start an interactive SQL shell, against a database and container",
	Example: "  cosmosfake sql --database shop --container items \"SELECT * FROM c WHERE c.Price > 10\"",
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		if sqlDatabase == "" || sqlContainer == "" {
			log.Fatalln("Both --database and --container must be specified.")
			return nil
		}

		ctx := context.Background()

		db, err := cli.CreateDatabase(ctx, sqlDatabase)
		if err != nil {
			return err
		}

		co, err := db.CreateContainer(ctx, sqlContainer, opts.DB.PartitionKey)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return runQuery(ctx, co, args[0])
		}

		return repl(ctx, co)

	},
}

// repl reads queries from stdin, one per line, running each against the
// container and printing the JSON rows to stdout, until EOF.
func repl(ctx context.Context, co *client.Container) error {
	fmt.Println("cosmosfake sql> enter a query, or Ctrl-D to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runQuery(ctx, co, line); err != nil {
			log.Errorln(err)
		}
	}
}

func runQuery(ctx context.Context, co *client.Container, text string) error {
	it := co.NewQueryIterator(text, nil)
	for it.HasMoreResults() {
		rows, err := it.FetchNext(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			out, err := json.Marshal(row)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
	}
	return nil
}

func init() {
	sqlCmd.Flags().StringVar(&sqlDatabase, "database", "", "Database to run queries against.")
	sqlCmd.Flags().StringVar(&sqlContainer, "container", "", "Container to run queries against.")
}
