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

var exportDatabase string
var exportContainer string

// msgpackHandle is shared by export and import so that a snapshot written
// by one build can always be read back by the other.
var msgpackHandle codec.MsgpackHandle

var exportCmd = &cobra.Command{
	Use:     "export [flags] <file>",
	Short:   "Write every document in a container to a binary snapshot file",
	Example: "  cosmosfake export --database shop --container items backup.msgpack",
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		if len(args) != 1 {
			log.Fatalln("No output filepath provided.")
			return nil
		}
		if exportDatabase == "" || exportContainer == "" {
			log.Fatalln("Both --database and --container must be specified.")
			return nil
		}

		ctx := context.Background()

		db, err := cli.Database(ctx, exportDatabase)
		if err != nil {
			return err
		}
		co, err := db.Container(ctx, exportContainer)
		if err != nil {
			return err
		}

		var rows []map[string]interface{}
		it := co.NewQueryIterator("SELECT * FROM c", nil)
		for it.HasMoreResults() {
			page, err := it.FetchNext(ctx)
			if err != nil {
				return err
			}
			rows = append(rows, page...)
		}

		fle, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("export failed - could not create %s: %w", args[0], err)
		}
		defer fle.Close()

		snap := snapshot{
			Database:  exportDatabase,
			Container: exportContainer,
			Documents: rows,
		}

		if err := codec.NewEncoder(fle, &msgpackHandle).Encode(snap); err != nil {
			return fmt.Errorf("export failed - could not encode snapshot: %w", err)
		}

		log.Infof("exported %d documents from %s/%s to %s", len(rows), exportDatabase, exportContainer, args[0])

		return nil

	},
}

// snapshot is the on-disk shape of an exported container.
type snapshot struct {
	Database  string
	Container string
	Documents []map[string]interface{}
}

func init() {
	exportCmd.Flags().StringVar(&exportDatabase, "database", "", "Database to export.")
	exportCmd.Flags().StringVar(&exportContainer, "container", "", "Container to export.")
}
