/*
Package patch orchestrates the load → transform → store cycle for declfix.

	+-----------+     +--------------+     +------------+
	|  Config   | --> |   Patcher    | --> |  Targets   |
	| (Targets) |     | (rewrite +   |     | (files on  |
	+-----------+     |  atomic I/O) |     |   disk)    |
	                  +--------------+     +------------+

🎯 Purpose:
- Resolves configured targets (literal paths and doublestar globs)
- Reads each file fully before anything is written
- Applies the rewrite rules line by line
- Replaces files atomically (temp file + rename), so a failed write
  never leaves a truncated original

🔄 Flow:
1. Validate the configuration
2. Expand targets into concrete file paths
3. Rewrite each file (sequentially, or concurrently with Async)
4. Report per-file results and a run summary

⚡ Key Responsibilities:
- Target resolution
- Atomic in-place rewrites
- Dry-run previews
- Result aggregation
*/
package patch
