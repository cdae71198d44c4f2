package main

import (
	"log/slog"

	"github.com/gnana997/tsmeta/pkg/extractor"
	"github.com/gnana997/tsmeta/pkg/parser"
	"github.com/gnana997/tsmeta/pkg/parser/queries"
	"github.com/gnana997/tsmeta/pkg/source"
	"github.com/gnana997/tsmeta/pkg/typelib"
	"github.com/gnana997/tsmeta/pkg/typeref"
	"github.com/gnana997/tsmeta/pkg/util"
)

const defaultCacheSize = 512

// stack wires together everything a command needs: parsers, the parsed-file
// cache, type resolution, and the extractor.
type stack struct {
	logger    *slog.Logger
	parsers   *parser.Manager
	queries   *queries.Manager
	files     *util.FileCache
	loader    *source.Loader
	library   *typelib.MemoryLibrary
	extractor *extractor.Extractor
}

func buildStack(cfg *ProjectConfig) (*stack, error) {
	logCfg := util.DefaultLoggerConfig()
	if cfg != nil {
		if cfg.LogLevel != "" {
			logCfg.Level = util.LogLevel(cfg.LogLevel)
		}
		if cfg.LogFormat != "" {
			logCfg.Format = util.LogFormat(cfg.LogFormat)
		}
	}
	logger := util.NewLogger(logCfg)

	cacheSize := defaultCacheSize
	if cfg != nil && cfg.CacheSize > 0 {
		cacheSize = cfg.CacheSize
	}

	pm := parser.NewManager(logger)
	qm := queries.NewManager(pm, logger)
	fc := util.NewFileCache(logger)

	loader, err := source.NewLoader(pm, qm, fc, cacheSize, logger)
	if err != nil {
		pm.Close()
		qm.Close()
		fc.Close()
		return nil, err
	}

	oracle := typeref.NewSyntacticOracle()
	library := typelib.NewMemoryLibrary()
	resolver := typeref.NewResolver(source.NewFileResolver(loader, logger), library, oracle, logger)

	return &stack{
		logger:    logger,
		parsers:   pm,
		queries:   qm,
		files:     fc,
		loader:    loader,
		library:   library,
		extractor: extractor.New(loader, extractor.NewQueryBridge(qm, logger), resolver, oracle, logger),
	}, nil
}

func (s *stack) close() {
	s.loader.Close()
	s.queries.Close()
	s.parsers.Close()
	s.files.Close()
}
