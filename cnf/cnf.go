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

package cnf

// Options defines global configuration options for the fake.
type Options struct {

	DB struct {
		PartitionKey string // Default partition-key path for new containers
		PageSize     int    // Default page size when a query does not specify one
	}

	Auth struct {
		Auth string // Master authentication details, in user:pass format
		User string
		Pass string
	}

	Logging struct {
		Level  string // Stores the configured logging level
		Output string // Stores the configured logging output
		Format string // Stores the configured logging format
	}
}

// Defaults returns an Options populated with the fake's defaults.
func Defaults() *Options {
	opts := &Options{}
	opts.DB.PartitionKey = "/id"
	opts.DB.PageSize = 100
	opts.Logging.Level = "info"
	opts.Logging.Output = "stdout"
	opts.Logging.Format = "text"
	return opts
}
