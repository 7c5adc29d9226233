/*
Package config manages configuration parsing and validation for declfix.

	            +-------------+
	            |   Config    |
	            | (Targets)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Describes which files to patch and with which replacement rules
- Validates configuration values
- Ships a built-in default matching the original duplicate-const fix
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file (or falls back to Default)
2. Parses format-specific syntax
3. Validates configuration values
4. Provides validated config to the patcher

🤝 Interfaces:
- Parser: Format-specific parsing
- Config: Type-safe access to targets and rules
*/
package config
