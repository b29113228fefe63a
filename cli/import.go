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
	"os"

	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"

	"github.com/cosmosfake/cosmosfake/log"
)

var importDatabase string
var importContainer string

var importCmd = &cobra.Command{
	Use:     "import [flags] <file>",
	Short:   "Load a binary snapshot file produced by export back into a container",
	Example: "  cosmosfake import --database shop --container items backup.msgpack",
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		if len(args) != 1 {
			log.Fatalln("No input filepath provided.")
			return nil
		}

		fle, err := os.OpenFile(args[0], os.O_RDONLY, 0644)
		if err != nil {
			return fmt.Errorf("import failed - could not open %s: %w", args[0], err)
		}
		defer fle.Close()

		var snap snapshot
		if err := codec.NewDecoder(fle, &msgpackHandle).Decode(&snap); err != nil {
			return fmt.Errorf("import failed - could not decode snapshot: %w", err)
		}

		database := importDatabase
		if database == "" {
			database = snap.Database
		}
		container := importContainer
		if container == "" {
			container = snap.Container
		}
		if database == "" || container == "" {
			log.Fatalln("Could not determine a target database/container; pass --database and --container.")
			return nil
		}

		ctx := context.Background()

		db, err := cli.CreateDatabase(ctx, database)
		if err != nil {
			return err
		}
		co, err := db.CreateContainer(ctx, container, opts.DB.PartitionKey)
		if err != nil {
			return err
		}

		for i, doc := range snap.Documents {
			if _, err := co.UpsertItem(ctx, doc); err != nil {
				return fmt.Errorf("import failed - document %d: %w", i, err)
			}
		}

		log.Infof("imported %d documents into %s/%s", len(snap.Documents), database, container)

		return nil

	},
}

func init() {
	importCmd.Flags().StringVar(&importDatabase, "database", "", "Database to import into, defaulting to the snapshot's original database.")
	importCmd.Flags().StringVar(&importContainer, "container", "", "Container to import into, defaulting to the snapshot's original container.")
}
