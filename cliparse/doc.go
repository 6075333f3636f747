// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for the API server and the desktop editor.

# Configuration

	cfg, err := cliparse.ParseFlags(os.Args[1:])        // server
	ecfg, err := cliparse.ParseEditorFlags(os.Args[1:]) // editor

# Precedence

CLI flag, then environment variable, then the .env file (loaded with
godotenv, never overriding variables that are already set), then the
default. A missing .env file is ignored.

# Server Flags

	-p            PORT              Server port (default 3318)
	-d            DATABASE_URL      Database URL (default file:polygons.db)
	-t            DATABASE_TYPE     sqlite or postgres (default sqlite)
	-data-file    DATA_FILE         JSON fallback store (default data/polygons.json)
	-latency      POLYGON_LATENCY   Simulated delay per operation (default 0s)
	-background   BACKGROUND_IMAGE  Preview background path or URL
	-log-level    LOG_LEVEL         debug, info, warn or error
	-env-file                       Dotenv file (default .env)

# Editor Flags

	-api          API_URL           API base URL (default http://localhost:3318)
	-background   BACKGROUND_IMAGE  Canvas background (default https://picsum.photos/1920/1080)
	-scale        WINDOW_SCALE      Window scale (default 1.0)
	-log-level    LOG_LEVEL

# Logging

	cliparse.SetupLogging(cfg.LogLevel)

installs a slog text handler on stderr as the default logger.
*/
package cliparse
