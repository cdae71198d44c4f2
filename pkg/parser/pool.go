package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool manages a pool of tree-sitter parsers for one language grammar.
//
// A buffered channel holds idle parsers; new parsers are created lazily up to
// maxSize. Channel operations make acquire/release safe without locking; the
// mutex only guards lazy creation and the created counter.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	isTSX   bool
	maxSize int

	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, isTSX bool, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		isTSX:   isTSX,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, creating one if the pool has headroom.
// Blocks when maxSize parsers are all in use.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	p.mutex.Lock()
	if p.created < p.maxSize {
		p.created++
		p.mutex.Unlock()

		parser := ts.NewParser()
		if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
			parser.Close()
			return nil, fmt.Errorf("set language %s: %w", p.lang, err)
		}
		p.logger.Debug("created parser",
			"language", p.lang.String(),
			"isTSX", p.isTSX)
		return parser, nil
	}
	p.mutex.Unlock()

	// Pool exhausted; wait for a release.
	return <-p.pool, nil
}

// release returns a parser to the pool.
func (p *parserPool) release(parser *ts.Parser) {
	select {
	case p.pool <- parser:
	default:
		// Pool full (parser created past a racing release); drop it.
		parser.Close()
	}
}

// close frees all idle parsers. In-flight parsers are freed on release.
func (p *parserPool) close() {
	for {
		select {
		case parser := <-p.pool:
			parser.Close()
		default:
			return
		}
	}
}

func (p *parserPool) getCreatedCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
