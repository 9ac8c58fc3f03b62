// Copyright 2025 Tom Barlow
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

/*
Package cli provides the root command and shared configuration for Baton's CLI.

This package creates the main Cobra command tree and handles global concerns like
version information, persistent flags, and error handling. Individual commands
are implemented in the internal/commands subpackages.

# Command Tree

The CLI is organized as:

	baton
	├── validate      Validate a shortcut definition
	├── analyze       Analyze shortcut structure
	├── compile       Compile to the flat document format
	├── decompile     Lift a flat document back to a shortcut
	├── actions       List the known action types
	├── schema        Output the interchange JSON schema
	├── version       Show version
	└── help          Show help

# Global Flags

Every command accepts:

	--verbose, -v    Enable verbose output
	--quiet, -q      Suppress non-error output
	--json           Output in JSON format
	--registry       Path to an action registry file or directory

# Exit Codes

Commands exit 0 on success, 1 on internal errors, 2 when validation
rejects a shortcut, 3 when input cannot be parsed, and 4 when
compilation aborts.
*/
package cli
