// Package writer persists downloaded bars in the layout the duckdb price provider reads back.
package writer

import (
	"io"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// MarketDataWriter receives the bars of one download. Initialize is called once before the
// first Write; Finalize only after every bar was accepted. Close runs on every path.
type MarketDataWriter interface {
	io.Closer

	Initialize() error
	Write(data types.MarketData) error
	// Finalize flushes the bars and returns the file they ended up in.
	Finalize() (outputPath string, err error)
	GetOutputPath() string
}
