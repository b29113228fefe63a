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
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// version and revision are overridden at link time with
// -ldflags "-X github.com/cosmosfake/cosmosfake/cli.version=... -X github.com/cosmosfake/cosmosfake/cli.revision=...".
var (
	version  = "dev"
	revision = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Output version information",
	Run: func(cmd *cobra.Command, args []string) {

		tw := tabwriter.NewWriter(os.Stdout, 2, 1, 2, ' ', 0)
		fmt.Fprintf(tw, "Build Go:   %s\n", runtime.Version())
		fmt.Fprintf(tw, "Build Ver:  %s\n", version)
		fmt.Fprintf(tw, "Build Rev:  %s\n", revision)
		tw.Flush()

	},
}
