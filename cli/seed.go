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
	"context"
	"fmt"
	"io/ioutil"

	"github.com/hjson/hjson-go"
	"github.com/spf13/cobra"

	"github.com/cosmosfake/cosmosfake/log"
)

var seedDatabase string
var seedContainer string

var seedCmd = &cobra.Command{
	Use:     "seed [flags] <file>",
	Short:   "Load a human-readable hjson fixture file into a container",
	Example: "  cosmosfake seed --database shop --container items fixtures/items.hjson",
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		if len(args) != 1 {
			log.Fatalln("No fixture filepath provided.")
			return nil
		}
		if seedDatabase == "" || seedContainer == "" {
			log.Fatalln("Both --database and --container must be specified.")
			return nil
		}

		raw, err := ioutil.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("seed failed - could not read %s: %w", args[0], err)
		}

		var parsed interface{}
		if err := hjson.Unmarshal(raw, &parsed); err != nil {
			return fmt.Errorf("seed failed - invalid hjson in %s: %w", args[0], err)
		}

		docs, ok := parsed.([]interface{})
		if !ok {
			return fmt.Errorf("seed failed - %s must contain a top-level array of documents", args[0])
		}

		ctx := context.Background()

		db, err := cli.CreateDatabase(ctx, seedDatabase)
		if err != nil {
			return err
		}
		co, err := db.CreateContainer(ctx, seedContainer, opts.DB.PartitionKey)
		if err != nil {
			return err
		}

		for i, raw := range docs {
			doc, ok := raw.(map[string]interface{})
			if !ok {
				return fmt.Errorf("seed failed - document %d in %s is not an object", i, args[0])
			}
			if _, err := co.UpsertItem(ctx, doc); err != nil {
				return fmt.Errorf("seed failed - document %d: %w", i, err)
			}
		}

		log.Infof("seeded %d documents into %s/%s", len(docs), seedDatabase, seedContainer)

		return nil

	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDatabase, "database", "", "Database to seed.")
	seedCmd.Flags().StringVar(&seedContainer, "container", "", "Container to seed.")
}
