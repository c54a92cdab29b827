package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/treekv/treekv/config"
	"github.com/treekv/treekv/internal/util"
	"github.com/treekv/treekv/resolvers"
	"github.com/treekv/treekv/tree"
)

func main() {
	// Parse command line arguments
	var (
		configPath  string
		nodesDef    string
		resolverSrc string
		verbose     int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes def file to seed a memory resolver with")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.StringVar(&resolverSrc, "resolver", "", `Resolver source as JSON, e.g. '{"type": "http", "base_url": "..."}'`)
	flag.StringVar(&resolverSrc, "r", "", "--resolver (shorthand)")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Initialize logger
	override := &config.ConfigOverride{LogLvl: &verbose}
	if resolverSrc != "" {
		override.Resolver = &resolverSrc
	}
	cfg := config.NewConfig(override)
	if configPath != "" {
		fileOverride, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			util.InitializeLogger(cfg.LogLvl)
			l := util.GetLogger("main")
			l.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg.Merge(fileOverride)
	}
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	path := flag.Arg(0)
	logger.Info().Int("verbose", verbose).Str("nodes", nodesDef).Str("path", path).Msg("treekv initializing")
	if path == "" {
		logger.Fatal().Msg("Node path not specified; it must be passed as the argument")
	}

	// Register all built-in resolvers
	resolvers.RegisterBuiltins()

	// The -nodes shortcut is sugar for a seeded memory resolver source
	source := cfg.Resolver
	if source == "" && nodesDef != "" {
		raw, err := json.Marshal(struct {
			Type string `json:"type"`
			Seed string `json:"seed"`
		}{resolvers.MemoryResolverType, nodesDef})
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to build resolver source")
		}
		source = string(raw)
	}

	var resolver tree.Resolver
	if source != "" {
		r, err := resolvers.GetResolver([]byte(source))
		if err != nil {
			logger.Fatal().Err(err).Str("source", source).Msg("Failed to build resolver")
		}
		resolver = r
	}

	store := tree.NewStore(cfg, resolver)
	node, err := store.Get(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed to fetch node")
	}

	fmt.Println(node.String())
	if csv, err := node.ChildNamesCSV(); err == nil && csv != "" {
		fmt.Println("children:", csv)
	}
}
