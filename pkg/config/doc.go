/*
Package config manages configuration parsing and validation for catalogrc.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads the simulated latency, catalog source and log level
- Picks a parser by file extension
- Applies defaults (1500ms delay, builtin products, info level)

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Resolves source paths against the config file directory
4. Validates and applies defaults

🔍 Example:

	cfg, err := config.LoadOptional(ctx, ".catalogrc.yaml")
	if err != nil {
		return err
	}

	provider, err := state.NewProvider(src, state.WithDelay(cfg.DelayDuration()))
*/
package config
